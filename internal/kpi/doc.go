// Package kpi implements the three pure stages of the KPI forecast pipeline.
//
// # Stages
//
//	1. GenerateForecast: extrapolates the last observation over a fixed
//	   seven step horizon with a linear 1% increment per step
//	2. Analyze: classifies the trend from the last two observations and
//	   computes their percent change
//	3. Narrate: renders the analysis as two plain-language insights
//
// None of the stages hold state, perform I/O, or depend on the HTTP layer.
// They are safe to call concurrently from any number of requests.
//
// # Usage
//
//	forecast := kpi.GenerateForecast(history)
//	analysis := kpi.Analyze(history)
//	insights := kpi.Narrate(analysis)
package kpi
