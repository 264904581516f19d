package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/voin/voin-backend/internal/repository"
)

const (
	FriendCodeLength   = 8
	friendCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	friendCodeAttempts = 5
)

var errFriendCodeExhausted = errors.New("friend code generation exhausted")

// FriendCodeGenerator 친구 코드 생성기
type FriendCodeGenerator interface {
	Generate() (string, error)
}

type randomFriendCode struct{}

// NewFriendCodeGenerator returns a crypto/rand backed generator
func NewFriendCodeGenerator() FriendCodeGenerator {
	return randomFriendCode{}
}

func (randomFriendCode) Generate() (string, error) {
	max := big.NewInt(int64(len(friendCodeAlphabet)))
	code := make([]byte, FriendCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("friend code: %w", err)
		}
		code[i] = friendCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}

// nextFriendCode returns a code not yet taken. The unique index on
// members.friend_code is still the final guard at insert time.
func nextFriendCode(gen FriendCodeGenerator, memberRepo repository.MemberRepository) (string, error) {
	for i := 0; i < friendCodeAttempts; i++ {
		code, err := gen.Generate()
		if err != nil {
			return "", err
		}
		exists, err := memberRepo.ExistsByFriendCode(code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", errFriendCodeExhausted
}
