package echoutil

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// AccessLog logs a pair of lines for each request, on its receipt and response.
//
// Lines carry the request id, when RequestID middleware runs before this.
func AccessLog(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			begin := time.Now()
			l := logger.With(
				zap.String("requestId", c.Response().Header().Get(echo.HeaderXRequestID)),
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
			)
			l.Debug("< request")

			err := next(c)

			fields := []zap.Field{
				zap.Int("status", c.Response().Status),
				zap.Duration("elapsed", time.Since(begin)),
			}
			if err != nil {
				fields = append(fields, zap.Error(err))
				l.Warn("> response", fields...)
			} else {
				l.Info("> response", fields...)
			}
			return err
		}
	}
}

// Level parses loglevel, one of debug, info, warn, error or off.
//
// ok is false for unknown levels.
func Level(loglevel string) (lv log.Lvl, ok bool) {
	switch strings.ToLower(loglevel) {
	case "debug":
		return log.DEBUG, true
	case "info":
		return log.INFO, true
	case "warn", "":
		return log.WARN, true
	case "error":
		return log.ERROR, true
	case "off":
		return log.OFF, true
	default:
		return log.WARN, false
	}
}

// SetLevel sets the level of echo's logger. Unknown level falls back to warn.
func SetLevel(e *echo.Echo, loglevel string) {
	lv, ok := Level(loglevel)
	e.Logger.SetLevel(lv)
	if !ok {
		e.Logger.Warnf("unknown loglevel: %s . fall-backed to warn", loglevel)
	}
}

// ZapLevel is the zap counterpart of Level. "off" makes the most severe level.
func ZapLevel(loglevel string) zapcore.Level {
	lv, _ := Level(loglevel)
	switch lv {
	case log.DEBUG:
		return zapcore.DebugLevel
	case log.INFO:
		return zapcore.InfoLevel
	case log.ERROR:
		return zapcore.ErrorLevel
	case log.OFF:
		return zapcore.FatalLevel
	default:
		return zapcore.WarnLevel
	}
}
