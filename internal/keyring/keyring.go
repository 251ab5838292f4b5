package keyring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/moodverse/internal/constants"
)

// Sentinel is the --db value that asks for the stored connection string.
const Sentinel = "keyring"

var (
	ErrNotFound           = errors.New("no poem database connection stored in keyring")
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
	ErrEmpty              = errors.New("connection string cannot be empty")
)

// LoadDSN reads the poem database connection string saved by SaveDSN.
func LoadDSN() (string, error) {
	dsn, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return dsn, nil
}

func SaveDSN(dsn string) error {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return ErrEmpty
	}
	if err := keyring.Set(constants.AppName, constants.DefaultKeyringUser, dsn); err != nil {
		return fmt.Errorf("failed to store connection in keyring: %w", err)
	}
	return nil
}

func ForgetDSN() error {
	err := keyring.Delete(constants.AppName, constants.DefaultKeyringUser)
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete connection from keyring: %w", err)
	}
	return nil
}

// Resolve returns db unchanged unless it is the keyring sentinel,
// in which case the stored connection string is returned.
func Resolve(db string) (resolved string, fromKeyring bool, err error) {
	if !strings.EqualFold(strings.TrimSpace(db), Sentinel) {
		return db, false, nil
	}
	dsn, err := LoadDSN()
	if err != nil {
		return "", true, err
	}
	return dsn, true, nil
}

// IsAvailable probes the OS keyring. A missing entry still means the keyring works.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "availability-probe")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
