package keystore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"gopkg.in/yaml.v3"
)

const (
	storeDirName  = ".scriptforge"
	storeFileName = "credentials.yaml"
)

// Store is a key-value credential store, one entry per provider key
// name. Lookups read the backing file fresh on every call so a saved
// key takes effect on the next dispatch. An environment variable of the
// same name always wins, and an optional GCP Secret Manager project can
// back the store for keys not found locally.
type Store struct {
	path    string
	project string
}

func New(path, project string) *Store {
	if path == "" {
		path = DefaultPath()
	}
	return &Store{path: path, project: project}
}

func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return storeFileName
	}
	return filepath.Join(home, storeDirName, storeFileName)
}

// Path returns the location of the backing file.
func (s *Store) Path() string {
	return s.path
}

// Get resolves a credential by key name. A missing credential is not an
// error; it returns the empty string.
func (s *Store) Get(ctx context.Context, keyName string) (string, error) {
	if v := os.Getenv(keyName); v != "" {
		return v, nil
	}

	entries, err := s.read()
	if err != nil {
		return "", err
	}
	if v := entries[keyName]; v != "" {
		return v, nil
	}

	if s.project != "" {
		return s.readSecret(ctx, keyName)
	}
	return "", nil
}

// Set saves a credential under keyName, creating the store file with
// owner-only permissions when needed.
func (s *Store) Set(keyName, value string) error {
	entries, err := s.read()
	if err != nil {
		return err
	}
	entries[keyName] = value
	return s.write(entries)
}

// Delete removes a credential.
func (s *Store) Delete(keyName string) error {
	entries, err := s.read()
	if err != nil {
		return err
	}
	delete(entries, keyName)
	return s.write(entries)
}

// Names lists the stored key names, sorted.
func (s *Store) Names() ([]string, error) {
	entries, err := s.read()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read credential store: %w", err)
	}

	entries := map[string]string{}
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse credential store: %w", err)
	}
	return entries, nil
}

func (s *Store) write(entries map[string]string) error {
	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode credential store: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create credential store directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("write credential store: %w", err)
	}
	return nil
}

func (s *Store) readSecret(ctx context.Context, keyName string) (string, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("create secret manager client: %w", err)
	}
	defer func() { _ = client.Close() }()

	resp, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: fmt.Sprintf("projects/%s/secrets/%s/versions/latest", s.project, keyName),
	})
	if err != nil {
		// absent secrets behave like absent local entries
		return "", nil
	}
	return string(resp.GetPayload().GetData()), nil
}
