// Package zaphandler bridges go.uber.org/zap into logz sinks.
//
// Core implements zapcore.Core: zap levels map onto logz levels (DPanic,
// Panic and Fatal become CRITICAL), zap logger names are appended to the
// core's name with a dot, and the first zap.Error field becomes the
// entry's attached error so alert blocks print its trace.
package zaphandler
