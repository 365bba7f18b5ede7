// Package logging 建立 logrus logger，並提供 echo 的存取紀錄與 request-scoped logger。
package logging

import (
	"io"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

// ContextLoggerKey 是 echo.Context 中存放 *logrus.Entry 的 key
const ContextLoggerKey = "logger"

var output io.Writer = os.Stdout

// New 依等級與環境建立 logger；production 使用 JSON 格式
func New(level string, development bool) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	log := logrus.New()
	log.SetOutput(output)
	log.SetLevel(lvl)
	if development {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	return log, nil
}

// Middleware 在每個 request 上掛一個帶 request_id 的 logger，並輸出存取紀錄
func Middleware(log *logrus.Logger) echo.MiddlewareFunc {
	attach := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			entry := log.WithField("request_id", c.Response().Header().Get(echo.HeaderXRequestID))
			c.Set(ContextLoggerKey, entry)
			return next(c)
		}
	}
	access := middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := logrus.Fields{
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency_ms": v.Latency.Milliseconds(),
				"request_id": v.RequestID,
				"remote_ip":  v.RemoteIP,
			}
			switch {
			case v.Status >= 500:
				log.WithFields(fields).Error("request")
			case v.Status >= 400:
				log.WithFields(fields).Warn("request")
			default:
				log.WithFields(fields).Info("request")
			}
			return nil
		},
	})
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return access(attach(next))
	}
}

// From 取得 request-scoped logger；沒有時退回標準 logger
func From(c echo.Context) *logrus.Entry {
	if entry, ok := c.Get(ContextLoggerKey).(*logrus.Entry); ok {
		return entry
	}
	return logrus.NewEntry(logrus.StandardLogger())
}
