package services

import (
	"mindtrack/internal/crypto"
	"mindtrack/internal/models"
)

// EncryptionService guards journal content and circle messages at rest.
type EncryptionService struct {
	cipher *crypto.Cipher
}

// NewEncryptionService creates an encryption service from a 32-byte key.
func NewEncryptionService(key []byte) (*EncryptionService, error) {
	cipher, err := crypto.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return &EncryptionService{cipher: cipher}, nil
}

// EncryptJournal encrypts journal content before storing in DB.
func (s *EncryptionService) EncryptJournal(entry *models.JournalEntry) error {
	encrypted, err := s.cipher.Encrypt(entry.Content)
	if err != nil {
		return err
	}
	entry.Content = encrypted
	return nil
}

// DecryptJournal decrypts journal content after retrieving from DB.
func (s *EncryptionService) DecryptJournal(entry *models.JournalEntry) error {
	decrypted, err := s.cipher.Decrypt(entry.Content)
	if err != nil {
		return err
	}
	entry.Content = decrypted
	return nil
}

// EncryptMessage encrypts an encouragement message before storing in DB.
func (s *EncryptionService) EncryptMessage(msg *models.EncouragementMessage) error {
	encrypted, err := s.cipher.Encrypt(msg.Message)
	if err != nil {
		return err
	}
	msg.Message = encrypted
	return nil
}

// DecryptMessage decrypts an encouragement message after retrieving from DB.
func (s *EncryptionService) DecryptMessage(msg *models.EncouragementMessage) error {
	decrypted, err := s.cipher.Decrypt(msg.Message)
	if err != nil {
		return err
	}
	msg.Message = decrypted
	return nil
}
