package sshtty

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"fmt"
	"os"

	gossh "github.com/gliderlabs/ssh"
	"github.com/go-logr/logr"
	xssh "golang.org/x/crypto/ssh"
)

// LoadOrCreateHostKey loads a PEM private key from path, or generates an
// ed25519 key and tries to save it there. A failed save is logged, not
// returned.
func LoadOrCreateHostKey(path string, logger logr.Logger) (gossh.Signer, error) {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			logger.Info("loaded host key", "path", path)
			return signer, nil
		}
		logger.Info("host key unreadable, generating a new one", "path", path)
	}

	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}
	block, err := xssh.MarshalPrivateKey(key, "scavenger server")
	if err != nil {
		logger.Error(err, "encode host key")
		return signer, nil
	}
	if err := os.WriteFile(path, pem.EncodeToMemory(block), 0o600); err != nil {
		logger.Error(err, "save host key", "path", path)
		return signer, nil
	}
	logger.Info("generated host key", "path", path)
	return signer, nil
}
