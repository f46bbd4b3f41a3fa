package logx

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/EgorLis/my-drive/internal/domain"
)

// Info пишет строку операции хендлера: req_id, op и пары ключ/значение.
func Info(l *zap.Logger, reqID, op, msg string, kv ...any) {
	l.Info(msg, fields(reqID, op, kv)...)
}

func Error(l *zap.Logger, reqID, op, msg string, err error, kv ...any) {
	fs := fields(reqID, op, kv)
	if err != nil {
		fs = append(fs, zap.Error(err))
	}
	l.Error(msg, fs...)
}

func Warn(l *zap.Logger, reqID, op, msg string, err error, kv ...any) {
	fs := fields(reqID, op, kv)
	if err != nil {
		fs = append(fs, zap.Error(err))
	}
	l.Warn(msg, fs...)
}

// Failure пишет ошибку use case с уровнем по её классу: ожидаемые исходы
// (400/401/404/409/429) в Warn, отмена клиентом в Info, всё остальное в Error.
func Failure(l *zap.Logger, reqID, op, msg string, err error, kv ...any) {
	fs := fields(reqID, op, kv)
	if err != nil {
		fs = append(fs, zap.Error(err))
	}
	if ce := l.Check(levelFor(err), msg); ce != nil {
		ce.Write(fs...)
	}
}

var expected = []error{
	domain.ErrBadParams,
	domain.ErrUnauth,
	domain.ErrForbidden,
	domain.ErrNotFound,
	domain.ErrConflict,
	domain.ErrTooManyRequests,
	domain.ErrMethodNotAllowed,
}

func levelFor(err error) zapcore.Level {
	if errors.Is(err, context.Canceled) {
		return zapcore.InfoLevel
	}
	for _, e := range expected {
		if errors.Is(err, e) {
			return zapcore.WarnLevel
		}
	}
	return zapcore.ErrorLevel
}

func fields(reqID, op string, kv []any) []zap.Field {
	fs := make([]zap.Field, 0, 2+len(kv)/2)
	fs = append(fs, zap.String("req_id", reqID), zap.String("op", op))
	for i := 0; i < len(kv); i += 2 {
		key := fmt.Sprint(kv[i])
		if i+1 >= len(kv) {
			fs = append(fs, zap.String(key, "(missing)"))
			break
		}
		fs = append(fs, zap.Any(key, kv[i+1]))
	}
	return fs
}
