package utils

import "strings"

// LikeEscapeChar is the escape character paired with EscapeLike.
// Queries must say `LIKE ? ESCAPE '\'`.
const LikeEscapeChar = `\`

var likeReplacer = strings.NewReplacer(
	`\`, `\\`,
	`%`, `\%`,
	`_`, `\_`,
)

// EscapeLike escapes LIKE wildcards so s matches literally.
func EscapeLike(s string) string {
	return likeReplacer.Replace(s)
}

// ContainsPattern builds a `%s%` LIKE pattern that matches s literally anywhere in a column.
func ContainsPattern(s string) string {
	return "%" + EscapeLike(s) + "%"
}
