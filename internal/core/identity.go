package core

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/huddlechat/huddle-server/internal/utils"
)

// Identity is the per-connection display information. It is neither unique
// nor authenticated and dies with the connection.
type Identity struct {
	Nickname string
	Badge    string
}

var nicknamePool = []string{
	"Nova", "Comet", "Orion", "Lyra", "Atlas", "Vega",
	"Juno", "Rune", "Ember", "Quill", "Sable", "Wren",
}

// NewIdentity builds an identity from a client-chosen nickname, generating
// an anonymous one when the nickname is blank. The badge is a short avatar
// tag derived from the nickname.
func NewIdentity(nickname string) Identity {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		nickname = fmt.Sprintf("%s%02d", nicknamePool[rand.IntN(len(nicknamePool))], rand.IntN(100))
	}
	return Identity{
		Nickname: nickname,
		Badge:    nickname + "-" + utils.NewID()[:4],
	}
}
