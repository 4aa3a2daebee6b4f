package xlog

import (
	"go.uber.org/zap/zapcore"

	"github.com/benz9527/xtree/lib/infra"
)

var _ XLogCore = (*consoleCore)(nil)

// consoleCore is the default core. Tree traces are told apart by
// their message and case field, so the function name is dropped
// and only the short caller is kept.
type consoleCore struct{}

func consoleEncoderConfig(lvlEnc zapcore.LevelEncoder, tsEnc zapcore.TimeEncoder) zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		MessageKey:       "msg",
		LevelKey:         "lvl",
		TimeKey:          "ts",
		NameKey:          "component",
		CallerKey:        "callAt",
		FunctionKey:      coreKeyIgnored,
		StacktraceKey:    coreKeyIgnored,
		LineEnding:       zapcore.DefaultLineEnding,
		ConsoleSeparator: " ",
		EncodeLevel:      lvlEnc,
		EncodeTime:       tsEnc,
		EncodeDuration:   zapcore.StringDurationEncoder,
		EncodeCaller:     zapcore.ShortCallerEncoder,
		EncodeName:       zapcore.FullNameEncoder,
	}
}

func (cc *consoleCore) Build(
	lvlEnabler zapcore.LevelEnabler,
	encoder LogEncoderType,
	writer LogOutWriterType,
	lvlEnc zapcore.LevelEncoder,
	tsEnc zapcore.TimeEncoder,
) (zapcore.Core, error) {
	if lvlEnabler == nil {
		return nil, infra.NewErrorStack("[xlog] console core without level")
	}
	enc := getEncoderByType(encoder)(consoleEncoderConfig(lvlEnc, tsEnc))
	return zapcore.NewCore(enc, getOutWriterByType(writer), lvlEnabler), nil
}
