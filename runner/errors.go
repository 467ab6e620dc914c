package runner

import "errors"

// ErrorType はCLI連携の失敗の種類です。
type ErrorType string

const (
	CommandNotFound ErrorType = "command_not_found"
	ExecutionError  ErrorType = "execution_error"
	Cancelled       ErrorType = "cancelled"
)

// MaxStderrRunes はエラー表示に含める標準エラーの最大文字数です。
const MaxStderrRunes = 500

// CLIError はCLI連携の失敗です。Stderr は最大 MaxStderrRunes 文字です。
type CLIError struct {
	Type    ErrorType
	Message string
	Stderr  string
	Err     error
}

func (e *CLIError) Error() string {
	return string(e.Type) + ": " + e.Message
}

func (e *CLIError) Unwrap() error { return e.Err }

// AsCLIError は err から *CLIError を取り出します。
func AsCLIError(err error) (*CLIError, bool) {
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr, true
	}
	return nil, false
}

// Truncate は s を先頭 n 文字(rune)までに切り詰めます。
func Truncate(s string, n int) string {
	if n < 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
