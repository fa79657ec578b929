package game

import (
	"regexp"

	petname "github.com/dustinkirkland/golang-petname"
)

const MaxNicknameLength = 16

var nickRegexp = regexp.MustCompile(`[^a-zA-Z0-9_\-!@#$%^&*+=,./]+`)

// Nickname strips characters that do not render well in the side panel and
// high score table. An empty result is replaced with a generated name.
func Nickname(nick string) string {
	nick = nickRegexp.ReplaceAllString(nick, "")
	if nick == "" {
		nick = petname.Generate(2, "-")
	}
	if len(nick) > MaxNicknameLength {
		nick = nick[:MaxNicknameLength]
	}

	return nick
}
