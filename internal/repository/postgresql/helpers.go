package postgresql

// sortColumn resolves an API sort key against a whitelist of columns,
// falling back to a default. Sort keys never reach SQL unmapped.
func sortColumn(key string, allowed map[string]string, fallback string) string {
	if col, ok := allowed[key]; ok {
		return col
	}
	return fallback
}

func sortDirection(order string) string {
	if order == "desc" {
		return "DESC"
	}
	return "ASC"
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return 10
	}
	if limit > 100 {
		return 100
	}
	return limit
}
