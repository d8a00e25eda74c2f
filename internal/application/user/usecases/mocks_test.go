package usecases

import (
	"errors"

	vo "github.com/upkeep-inc/upkeep/internal/domain/user/valueobjects"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
)

type mockTokenIssuer struct {
	issued []string
	fail   bool
}

func (m *mockTokenIssuer) Issue(username string, role vo.Role) (string, int64, error) {
	if m.fail {
		return "", 0, errors.New("signing failed")
	}
	m.issued = append(m.issued, username+":"+role.String())
	return "token-" + username, 3600, nil
}

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)           {}
func (m *mockLogger) Info(msg string, args ...any)            {}
func (m *mockLogger) Warn(msg string, args ...any)            {}
func (m *mockLogger) Error(msg string, args ...any)           {}
func (m *mockLogger) With(args ...any) logger.Interface       { return m }
func (m *mockLogger) Named(name string) logger.Interface      { return m }
func (m *mockLogger) Debugw(msg string, keysAndValues ...any) {}
func (m *mockLogger) Infow(msg string, keysAndValues ...any)  {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...any)  {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...any) {}
