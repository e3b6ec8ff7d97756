package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config opções do logger.
type Config struct {
	App   string // gravado no campo "app" de cada evento, se informado
	Env   string // development: console legível; demais: JSON
	Level string // trace, debug, info, warn, error
}

// Logger envolve o zerolog para ser injetado nos casos de uso e handlers.
type Logger struct {
	zl zerolog.Logger
}

// New monta o logger da aplicação e o instala como logger global do zerolog.
func New(cfg Config) *Logger {
	var out io.Writer = os.Stdout
	if cfg.Env == "development" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	}
	l := build(out, cfg)
	log.Logger = l.zl
	return l
}

// NewWithWriter escreve JSON em w sem tocar no logger global.
func NewWithWriter(w io.Writer, level string) *Logger {
	return build(w, Config{Level: level})
}

// Nop descarta tudo.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func build(w io.Writer, cfg Config) *Logger {
	ctx := zerolog.New(w).Level(ParseLevel(cfg.Level)).With().Timestamp()
	if cfg.App != "" {
		ctx = ctx.Str("app", cfg.App)
	}
	return &Logger{zl: ctx.Logger()}
}

// ParseLevel aceita os nomes do zerolog sem diferenciar caixa. Vazio ou
// desconhecido cai em info.
func ParseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

func (l *Logger) Trace() *zerolog.Event { return l.zl.Trace() }
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// Child devolve um sublogger com o campo fixo key=value, p.ex. o id da requisição.
func (l *Logger) Child(key, value string) *Logger {
	return &Logger{zl: l.zl.With().Str(key, value).Logger()}
}

// Zerolog expõe o logger interno.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zl
}
