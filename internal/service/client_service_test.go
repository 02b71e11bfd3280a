package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marianaduarte/erp-estetica/internal/domain/attendance"
	"github.com/marianaduarte/erp-estetica/internal/domain/client"
)

func newClientFixture(t *testing.T) (*ClientService, *fakeClientRepo, *fakeAttendanceRepo) {
	t.Helper()
	clientRepo := &fakeClientRepo{}
	attendanceRepo := &fakeAttendanceRepo{}
	svc := NewClientService(clientRepo, attendanceRepo, noopLogger{})
	return svc, clientRepo, attendanceRepo
}

func seedClient(t *testing.T, repo *fakeClientRepo, name string, createdAt time.Time) *client.Client {
	t.Helper()
	c, err := client.NewClient(testUserID, name, "", "")
	require.NoError(t, err)
	c.CreatedAt = createdAt
	require.NoError(t, repo.Create(context.Background(), c))
	return c
}

func seedPaidVisit(t *testing.T, repo *fakeAttendanceRepo, clientID string, date time.Time, value float64) {
	t.Helper()
	a, err := attendance.NewAttendance(testUserID, clientID, "proc-1",
		date, value, 0, 0, attendance.MethodPix, attendance.StatusPaid)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), a))
}

func TestRecomputeSegments_VIP(t *testing.T) {
	svc, clientRepo, attendanceRepo := newClientFixture(t)
	now := time.Now()
	c := seedClient(t, clientRepo, "Maria", now.AddDate(-1, 0, 0))

	// 5 visitas recentes somando 2000
	for i := 0; i < 5; i++ {
		seedPaidVisit(t, attendanceRepo, c.ID, now.AddDate(0, 0, -i*7), 400)
	}

	result, err := svc.RecomputeSegments(context.Background(), testUserID)
	require.NoError(t, err)

	assert.Equal(t, 1, result.ClientsProcessed)
	assert.Equal(t, 1, result.SegmentsChanged)
	assert.Equal(t, client.SegmentVIP, c.Segment)
	assert.Equal(t, 2000.0, c.TotalSpent)
	assert.Equal(t, 5, c.TotalVisits)
}

func TestRecomputeSegments_AtRiskAndLost(t *testing.T) {
	svc, clientRepo, attendanceRepo := newClientFixture(t)
	now := time.Now()

	atRisk := seedClient(t, clientRepo, "Ana", now.AddDate(-1, 0, 0))
	seedPaidVisit(t, attendanceRepo, atRisk.ID, now.AddDate(0, 0, -120), 100)

	lost := seedClient(t, clientRepo, "Paula", now.AddDate(-1, 0, 0))
	seedPaidVisit(t, attendanceRepo, lost.ID, now.AddDate(0, 0, -200), 100)

	_, err := svc.RecomputeSegments(context.Background(), testUserID)
	require.NoError(t, err)

	assert.Equal(t, client.SegmentAtRisk, atRisk.Segment)
	assert.Equal(t, client.SegmentLost, lost.Segment)
}

func TestRecomputeSegments_LostTakesPrecedenceOverVIP(t *testing.T) {
	svc, clientRepo, attendanceRepo := newClientFixture(t)
	now := time.Now()
	c := seedClient(t, clientRepo, "Maria", now.AddDate(-2, 0, 0))

	// Gasto e visitas de VIP, mas a última visita foi há mais de 180 dias
	for i := 0; i < 6; i++ {
		seedPaidVisit(t, attendanceRepo, c.ID, now.AddDate(0, 0, -200-i), 500)
	}

	_, err := svc.RecomputeSegments(context.Background(), testUserID)
	require.NoError(t, err)

	assert.Equal(t, client.SegmentLost, c.Segment)
}

func TestRecomputeSegments_NewWithoutVisits(t *testing.T) {
	svc, clientRepo, _ := newClientFixture(t)
	now := time.Now()

	recent := seedClient(t, clientRepo, "Clara", now.AddDate(0, 0, -10))
	old := seedClient(t, clientRepo, "Sofia", now.AddDate(0, 0, -120))

	result, err := svc.RecomputeSegments(context.Background(), testUserID)
	require.NoError(t, err)

	assert.Equal(t, 2, result.ClientsProcessed)
	assert.Equal(t, client.SegmentNew, recent.Segment)
	assert.Equal(t, client.SegmentLost, old.Segment)
}

func TestRecomputeSegments_RegularClient(t *testing.T) {
	svc, clientRepo, attendanceRepo := newClientFixture(t)
	now := time.Now()
	c := seedClient(t, clientRepo, "Maria", now.AddDate(-1, 0, 0))

	// Visitas recentes, mas gasto abaixo do limiar de VIP
	for i := 0; i < 4; i++ {
		seedPaidVisit(t, attendanceRepo, c.ID, now.AddDate(0, 0, -i*10), 100)
	}

	_, err := svc.RecomputeSegments(context.Background(), testUserID)
	require.NoError(t, err)

	assert.Equal(t, client.SegmentRegular, c.Segment)
	assert.Equal(t, 400.0, c.TotalSpent)
	require.NotNil(t, c.LastVisitAt)
}

func TestRecomputeSegments_IgnoresPendingAttendances(t *testing.T) {
	svc, clientRepo, attendanceRepo := newClientFixture(t)
	now := time.Now()
	c := seedClient(t, clientRepo, "Maria", now.AddDate(0, 0, -10))

	pending, err := attendance.NewAttendance(testUserID, c.ID, "proc-1",
		now, 300, 0, 0, attendance.MethodPix, attendance.StatusPending)
	require.NoError(t, err)
	require.NoError(t, attendanceRepo.Create(context.Background(), pending))

	_, err = svc.RecomputeSegments(context.Background(), testUserID)
	require.NoError(t, err)

	assert.Zero(t, c.TotalSpent)
	assert.Zero(t, c.TotalVisits)
	assert.Equal(t, client.SegmentNew, c.Segment)
}
