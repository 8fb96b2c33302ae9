package kanban

import (
	"strings"
)

// UnknownUser is the name shown for ids not in the user list.
const UnknownUser = "Usuário não encontrado"

// Names splits the full name of u into words.
func Names(u User) []string {
	return strings.Fields(u.FirstName + " " + u.LastName)
}

// FullName is the first name and the last name joined with a space.
func FullName(u User) string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Initials are the upper-cased first letters of the first and the last word of the name.
//
// A single-word name gives a single letter.
func Initials(u User) string {
	names := Names(u)
	if len(names) == 0 {
		return ""
	}
	first := []rune(names[0])[:1]
	if len(names) == 1 {
		return strings.ToUpper(string(first))
	}
	last := []rune(names[len(names)-1])[:1]
	return strings.ToUpper(string(first) + string(last))
}

// UserName finds the name of the user with id.
func UserName(users []User, id string) string {
	for _, u := range users {
		if u.Id == id {
			return u.Name
		}
	}
	return UnknownUser
}
