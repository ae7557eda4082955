// Package crypto encrypts and decrypts notes with age X25519 keys
package crypto

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"filippo.io/age"

	"github.com/patrickward/twospace"
)

var (
	ErrNoRecipients = errors.New("no recipients configured for encryption")
	ErrNoIdentities = errors.New("no identities configured for decryption")
)

// ageHeader starts every age encrypted file
const ageHeader = "age-encryption.org/v1"

const (
	recipientFileSizeLimit = 16 << 20 // 16MiB
	recipientLineLimit     = 8 << 10  // 8KiB (same as sshd(8))
)

// EncryptionManager holds the recipients and identities used for notes
type EncryptionManager struct {
	recipients []age.Recipient
	identities []age.Identity
	mu         sync.RWMutex
}

func NewEncryptionManager() *EncryptionManager {
	return &EncryptionManager{}
}

// AddRecipient adds a recipient public key
func (em *EncryptionManager) AddRecipient(publicKey string) error {
	recipient, err := age.ParseX25519Recipient(strings.TrimSpace(publicKey))
	if err != nil {
		return fmt.Errorf("failed to parse recipient: %w", err)
	}

	em.mu.Lock()
	defer em.mu.Unlock()
	em.recipients = append(em.recipients, recipient)
	return nil
}

// AddRecipientsFromFile loads one recipient per line, skipping blank lines and # comments
func (em *EncryptionManager) AddRecipientsFromFile(filePath string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open recipients file: %w", err)
	}

	defer func(file *os.File) {
		_ = file.Close()
	}(file)

	if stat, err := file.Stat(); err == nil && stat.Size() > recipientFileSizeLimit {
		return fmt.Errorf("recipient file size exceeds limit: %d > %d", stat.Size(), recipientFileSizeLimit)
	}

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if len(line) > recipientLineLimit {
			return fmt.Errorf("recipient line exceeds limit: %d > %d", len(line), recipientLineLimit)
		}

		if err := em.AddRecipient(line); err != nil {
			return err
		}
	}

	return scanner.Err()
}

// AddIdentity adds a private key
func (em *EncryptionManager) AddIdentity(identityStr string) error {
	identity, err := age.ParseX25519Identity(strings.TrimSpace(identityStr))
	if err != nil {
		return fmt.Errorf("failed to parse identity: %w", err)
	}

	em.mu.Lock()
	defer em.mu.Unlock()
	em.identities = append(em.identities, identity)
	return nil
}

// AddIdentitiesFromFile loads every identity in an age identity file
func (em *EncryptionManager) AddIdentitiesFromFile(filePath string) error {
	keyFile, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open key file: %w", err)
	}

	defer func(keyFile *os.File) {
		_ = keyFile.Close()
	}(keyFile)

	identities, err := age.ParseIdentities(keyFile)
	if err != nil {
		return fmt.Errorf("failed to parse identities: %w", err)
	}

	em.mu.Lock()
	defer em.mu.Unlock()
	em.identities = append(em.identities, identities...)
	return nil
}

// LoadEncryptionKeys loads the identity and recipient files. Either may be empty
func (em *EncryptionManager) LoadEncryptionKeys(identitiesFile, recipientsFile string) error {
	if identitiesFile != "" {
		if err := em.AddIdentitiesFromFile(identitiesFile); err != nil {
			return fmt.Errorf("failed to load identity file %s: %w", identitiesFile, err)
		}
	}

	if recipientsFile != "" {
		if err := em.AddRecipientsFromFile(recipientsFile); err != nil {
			return fmt.Errorf("failed to load recipient file %s: %w", recipientsFile, err)
		}
	}

	return nil
}

func (em *EncryptionManager) HasRecipients() bool {
	em.mu.RLock()
	defer em.mu.RUnlock()
	return len(em.recipients) > 0
}

func (em *EncryptionManager) HasIdentities() bool {
	em.mu.RLock()
	defer em.mu.RUnlock()
	return len(em.identities) > 0
}

// Encrypt encrypts content to all recipients
func (em *EncryptionManager) Encrypt(content string) ([]byte, error) {
	em.mu.RLock()
	defer em.mu.RUnlock()

	if len(em.recipients) == 0 {
		return nil, ErrNoRecipients
	}

	var buf bytes.Buffer
	encryptWriter, err := age.Encrypt(&buf, em.recipients...)
	if err != nil {
		return nil, fmt.Errorf("failed to create encrypt writer: %w", err)
	}

	if _, err := io.WriteString(encryptWriter, content); err != nil {
		_ = encryptWriter.Close()
		return nil, fmt.Errorf("failed to write content: %w", err)
	}

	if err := encryptWriter.Close(); err != nil {
		return nil, fmt.Errorf("failed to close encrypt writer: %w", err)
	}

	return buf.Bytes(), nil
}

// Decrypt decrypts content with any matching identity
func (em *EncryptionManager) Decrypt(encryptedContent []byte) (string, error) {
	em.mu.RLock()
	defer em.mu.RUnlock()

	if len(em.identities) == 0 {
		return "", ErrNoIdentities
	}

	decryptReader, err := age.Decrypt(bytes.NewReader(encryptedContent), em.identities...)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, decryptReader); err != nil {
		return "", fmt.Errorf("failed to read decrypted content: %w", err)
	}

	return buf.String(), nil
}

// IsAgeEncrypted checks for the age format header
func IsAgeEncrypted(content []byte) bool {
	return bytes.HasPrefix(content, []byte(ageHeader))
}

// HasEncryptedFrontmatter reports whether the front matter sets encrypted: true (or yes)
func HasEncryptedFrontmatter(content string) bool {
	lines := twospace.SplitLines(content)
	bounds := twospace.FindFrontmatter(lines)
	if !bounds.Closed {
		return false
	}

	for _, line := range bounds.Lines(lines) {
		key, value, ok := strings.Cut(strings.TrimSpace(line), ":")
		if !ok || strings.TrimSpace(key) != "encrypted" {
			continue
		}
		value = strings.ToLower(strings.TrimSpace(value))
		return value == "true" || value == "yes"
	}

	return false
}

// SaveKeyPairToFiles writes baseName.pub and baseName.txt (mode 0600) into keysDir
func SaveKeyPairToFiles(publicKey, privateKey, keysDir, baseName string) (publicPath, privatePath string, err error) {
	if err := os.MkdirAll(keysDir, 0700); err != nil {
		return "", "", fmt.Errorf("failed to create key directory: %w", err)
	}

	publicPath = filepath.Join(keysDir, baseName+".pub")
	privatePath = filepath.Join(keysDir, baseName+".txt")

	if err := os.WriteFile(publicPath, []byte(publicKey+"\n"), 0644); err != nil {
		return "", "", fmt.Errorf("failed to save public key: %w", err)
	}

	privateContent := fmt.Sprintf("# age identity file\n# generated: %s\n%s\n",
		time.Now().Format("2006-01-02 15:04:05"), privateKey)
	if err := os.WriteFile(privatePath, []byte(privateContent), 0600); err != nil {
		return "", "", fmt.Errorf("failed to save private key: %w", err)
	}

	return publicPath, privatePath, nil
}

// KeyPair is a generated identity and where it was written
type KeyPair struct {
	PublicKey   string
	PrivateKey  string
	PublicPath  string
	PrivatePath string
}

// GenerateNewEncryptionPair generates an X25519 identity and saves it to keysDir
func GenerateNewEncryptionPair(keysDir string) (KeyPair, error) {
	if strings.TrimSpace(keysDir) == "" {
		return KeyPair{}, fmt.Errorf("keys directory must be specified")
	}

	identity, err := age.GenerateX25519Identity()
	if err != nil {
		return KeyPair{}, fmt.Errorf("failed to generate identity: %w", err)
	}

	pair := KeyPair{
		PublicKey:  identity.Recipient().String(),
		PrivateKey: identity.String(),
	}

	baseName := fmt.Sprintf("twospace-key-%s", time.Now().Format("2006-01-02-15-04-05"))
	pair.PublicPath, pair.PrivatePath, err = SaveKeyPairToFiles(pair.PublicKey, pair.PrivateKey, keysDir, baseName)
	if err != nil {
		return KeyPair{}, fmt.Errorf("failed to save key pair: %w", err)
	}

	return pair, nil
}
