// Package shared holds helpers used by more than one kpicast package.
//
// The testutil subpackage captures slog output so tests can assert on
// log records without parsing handler output:
//
//	logger, logs := testutil.NewTestLogger(t)
//	svc := services.NewForecastService(logger, nil, nil)
//	svc.ForecastAndExplain(ctx, history)
//	assert.True(t, logs.ContainsMessage("forecast produced"))
package shared
