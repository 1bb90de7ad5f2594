package storage

import (
	"context"
	"errors"
	"time"

	"github.com/cod3gen/zeekr-homeassistant/util"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const slowThreshold = 200 * time.Millisecond

type adapter struct {
	log *util.Logger
}

func (l *adapter) LogMode(_ logger.LogLevel) logger.Interface {
	return l
}

func (l *adapter) Info(_ context.Context, format string, args ...interface{}) {
	l.log.INFO.Printf(format, args...)
}

func (l *adapter) Warn(_ context.Context, format string, args ...interface{}) {
	l.log.WARN.Printf(format, args...)
}

func (l *adapter) Error(_ context.Context, format string, args ...interface{}) {
	l.log.ERROR.Printf(format, args...)
}

func (l *adapter) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	elapsed := time.Since(begin)

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, _ := fc()
		l.log.ERROR.Printf("%v: %s", err, sql)

	case elapsed > slowThreshold:
		sql, rows := fc()
		l.log.WARN.Printf("slow query (%v, %d rows): %s", elapsed.Round(time.Millisecond), rows, sql)

	default:
		sql, rows := fc()
		l.log.TRACE.Printf("%s (%d rows)", sql, rows)
	}
}
