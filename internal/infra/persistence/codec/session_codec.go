// Package codec converts a Session to and from the opaque blob the session stores hold.
package codec

import (
	"bytes"
	"encoding/json"

	"ordering/internal/domain/entity"
	"ordering/internal/errors"
)

// blobVersion is written into every blob so that later layouts can be told apart.
const blobVersion = 1

type sessionBlob struct {
	Version int             `json:"v"`
	Session *entity.Session `json:"session"`
}

// EncodeSession serializes a session. A nil session cannot be encoded.
func EncodeSession(session *entity.Session) ([]byte, error) {
	if session == nil {
		return nil, errors.New("cannot encode nil session")
	}

	data, err := json.Marshal(sessionBlob{Version: blobVersion, Session: session})
	if err != nil {
		return nil, errors.Wrap(err, "marshal session")
	}

	return data, nil
}

// DecodeSession parses a blob written by EncodeSession.
// An empty blob decodes to (nil, nil), meaning no session is stored.
func DecodeSession(data []byte) (*entity.Session, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var blob sessionBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return nil, errors.Wrap(err, "unmarshal session")
	}

	if blob.Version != blobVersion {
		return nil, errors.Errorf("unsupported session blob version %d", blob.Version)
	}

	if blob.Session == nil || blob.Session.AccountID == "" || blob.Session.Token == "" {
		return nil, errors.New("session blob is missing account or token")
	}

	return blob.Session, nil
}
