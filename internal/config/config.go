package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

type Config struct {
	Port           string
	JWTSecret      string
	LogLevel       string
	AllowedOrigins []string
	Restaurant     RestaurantInfo
	Staff          []StaffMember
}

// StaffMember is a person allowed to log in with a PIN.
type StaffMember struct {
	ID      uuid.UUID
	Name    string
	Role    string
	PINHash string
}

var ErrInvalidStaff = errors.New("invalid STAFF entry")

// staffNamespace derives stable staff ids from names.
var staffNamespace = uuid.MustParse("6f1c2a4e-5b3d-4e8f-9a7b-2c1d0e9f8a6b")

func Load() (*Config, error) {
	open, err := strconv.ParseBool(getEnv("RESTAURANT_OPEN", "true"))
	if err != nil {
		return nil, fmt.Errorf("RESTAURANT_OPEN: %w", err)
	}

	staff, err := ParseStaff(os.Getenv("STAFF"))
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:           getEnv("PORT", "8081"),
		JWTSecret:      getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),
		Restaurant: RestaurantInfo{
			Name:    getEnv("RESTAURANT_NAME", "Restaurante Padrões de Projeto"),
			Address: getEnv("RESTAURANT_ADDRESS", "Rua dos Devs, 999"),
			Phone:   getEnv("RESTAURANT_PHONE", "(99) 99999-9999"),
			Open:    open,
		},
		Staff: staff,
	}, nil
}

// ParseStaff reads comma-separated "name:ROLE:bcrypt-hash" entries.
func ParseStaff(s string) ([]StaffMember, error) {
	var staff []StaffMember
	for i, entry := range splitList(s) {
		parts := strings.SplitN(entry, ":", 3)
		if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
			return nil, fmt.Errorf("%w: entry %d", ErrInvalidStaff, i)
		}
		staff = append(staff, StaffMember{
			ID:      uuid.NewSHA1(staffNamespace, []byte(parts[0])),
			Name:    parts[0],
			Role:    strings.ToUpper(parts[1]),
			PINHash: parts[2],
		})
	}
	return staff, nil
}

func splitList(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
