package querybuilder

import "strings"

type Condition struct {
	clause string
	args   []interface{}
}

func buildCondition(conditions []Condition) (string, []interface{}) {
	clauses := make([]string, 0, len(conditions))
	args := make([]interface{}, 0)

	for _, cond := range conditions {
		clauses = append(clauses, cond.clause)
		args = append(args, cond.args...)
	}

	return strings.Join(clauses, " AND "), args
}
