package auth

import (
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// CredentialStore defines the interface for storing and retrieving the
// operator account
type CredentialStore interface {
	GetCredentials() (*Credentials, error)
	SaveCredentials(creds *Credentials) error
}

// Credentials represents the operator account
type Credentials struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
}

// FileCredentialStore implements CredentialStore using a JSON file
type FileCredentialStore struct {
	filepath string
}

// NewFileCredentialStore creates a new file-based credential store
func NewFileCredentialStore(filepath string) *FileCredentialStore {
	return &FileCredentialStore{filepath: filepath}
}

// GetCredentials retrieves the operator account from the file
func (s *FileCredentialStore) GetCredentials() (*Credentials, error) {
	data, err := os.ReadFile(s.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("credential file not found")
		}
		return nil, err
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, err
	}

	return &creds, nil
}

// SaveCredentials saves the operator account to the file
func (s *FileCredentialStore) SaveCredentials(creds *Credentials) error {
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.filepath, data, 0600)
}

// Bootstrap writes the operator account with a freshly hashed password if
// no credential file exists yet. Returns true when an account was created.
func Bootstrap(store CredentialStore, username, password string) (bool, error) {
	if _, err := store.GetCredentials(); err == nil {
		return false, nil
	}

	if username == "" || password == "" {
		return false, fmt.Errorf("no credential file and no bootstrap credentials configured")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}

	creds := &Credentials{
		Username:     username,
		PasswordHash: string(hash),
	}

	if err := store.SaveCredentials(creds); err != nil {
		return false, fmt.Errorf("failed to save credentials: %w", err)
	}

	return true, nil
}
