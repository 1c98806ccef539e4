package utils

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidHash - строка хеша не в формате argon2id.
var ErrInvalidHash = errors.New("неверный формат хеша argon2id")

// ArgonParams - параметры Argon2id, которые записываются в каждую строку хеша.
type ArgonParams struct {
	Memory      uint32
	Time        uint32
	Parallelism uint8
	SaltLen     uint32
	KeyLen      uint32
}

// DefaultArgonParams - параметры для новых хешей (RFC 9106, второй рекомендованный вариант).
var DefaultArgonParams = ArgonParams{
	Memory:      64 * 1024,
	Time:        1,
	Parallelism: 4,
	SaltLen:     16,
	KeyLen:      32,
}

const maxArgonMemoryKB = 1024 * 1024

func HashPassword(password string) (string, error) {
	return HashPasswordWithParams(password, DefaultArgonParams)
}

func HashPasswordWithParams(password string, params ArgonParams) (string, error) {
	if password == "" {
		return "", fmt.Errorf("пароль не может быть пустым")
	}

	salt := make([]byte, params.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("не удалось сгенерировать соль: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, params.Time, params.Memory, params.Parallelism, params.KeyLen)

	encSalt := base64.RawStdEncoding.EncodeToString(salt)
	encHash := base64.RawStdEncoding.EncodeToString(hash)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, params.Memory, params.Time, params.Parallelism, encSalt, encHash), nil
}

// ComparePasswords возвращает true, если пароль совпадает с хешем.
// Битый хеш считается несовпадением. Старые bcrypt-хеши тоже проверяются.
func ComparePasswords(hashedPassword string, plainPassword string) bool {
	if isBcryptHash(hashedPassword) {
		return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword)) == nil
	}

	params, salt, hash, err := decodeArgonHash(hashedPassword)
	if err != nil {
		return false
	}

	computed := argon2.IDKey([]byte(plainPassword), salt, params.Time, params.Memory, params.Parallelism, params.KeyLen)
	return subtle.ConstantTimeCompare(hash, computed) == 1
}

// NeedsRehash сообщает, что хеш сделан не argon2id или с устаревшими параметрами.
func NeedsRehash(hashedPassword string) bool {
	params, _, _, err := decodeArgonHash(hashedPassword)
	if err != nil {
		return true
	}
	return params.Memory < DefaultArgonParams.Memory ||
		params.Time < DefaultArgonParams.Time ||
		params.KeyLen < DefaultArgonParams.KeyLen
}

func isBcryptHash(h string) bool {
	return strings.HasPrefix(h, "$2a$") || strings.HasPrefix(h, "$2b$") || strings.HasPrefix(h, "$2y$")
}

func decodeArgonHash(encoded string) (ArgonParams, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return ArgonParams{}, nil, nil, ErrInvalidHash
	}
	if parts[2] != fmt.Sprintf("v=%d", argon2.Version) {
		return ArgonParams{}, nil, nil, ErrInvalidHash
	}

	var params ArgonParams
	for _, token := range strings.Split(parts[3], ",") {
		keyValue := strings.SplitN(token, "=", 2)
		if len(keyValue) != 2 {
			return ArgonParams{}, nil, nil, ErrInvalidHash
		}
		key, value := keyValue[0], keyValue[1]
		switch key {
		case "m":
			v, err := strconv.ParseUint(value, 10, 32)
			if err != nil {
				return ArgonParams{}, nil, nil, ErrInvalidHash
			}
			params.Memory = uint32(v)
		case "t":
			v, err := strconv.ParseUint(value, 10, 32)
			if err != nil {
				return ArgonParams{}, nil, nil, ErrInvalidHash
			}
			params.Time = uint32(v)
		case "p":
			v, err := strconv.ParseUint(value, 10, 8)
			if err != nil {
				return ArgonParams{}, nil, nil, ErrInvalidHash
			}
			params.Parallelism = uint8(v)
		default:
			return ArgonParams{}, nil, nil, ErrInvalidHash
		}
	}
	// argon2.IDKey паникует на нулевых параметрах
	if params.Memory == 0 || params.Memory > maxArgonMemoryKB || params.Time == 0 || params.Parallelism == 0 {
		return ArgonParams{}, nil, nil, ErrInvalidHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return ArgonParams{}, nil, nil, ErrInvalidHash
	}
	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(hash) == 0 {
		return ArgonParams{}, nil, nil, ErrInvalidHash
	}

	params.SaltLen = uint32(len(salt))
	params.KeyLen = uint32(len(hash))

	return params, salt, hash, nil
}

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator(v *validator.Validate) *CustomValidator {
	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}
