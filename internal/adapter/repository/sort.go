package repository

// orderClause monta a cláusula ORDER BY validando o campo contra a lista de
// colunas permitidas do repositório. Campos desconhecidos caem na ordenação
// padrão, nunca são interpolados na consulta.
func orderClause(allowed map[string]string, field string, descending bool, defaultOrder string) string {
	column, ok := allowed[field]
	if !ok {
		return " ORDER BY " + defaultOrder
	}

	direction := " ASC"
	if descending {
		direction = " DESC"
	}
	return " ORDER BY " + column + direction
}
