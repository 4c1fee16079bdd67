// Package pipeline runs one selection and classification pass against a store.
//
// A run loads the training curves, the reference catalog and the test
// observations, selects a reference curve with its tolerance for every
// training curve, classifies every observation against the selected pairs and
// persists the records in a single store transaction. Any failure before
// Commit rolls the transaction back, so a failed run leaves no partial results.
//
// Example:
//
//	s, _ := store.Open("data")
//	defer s.Close()
//
//	p, _ := pipeline.New(s, pipeline.WithMetric(fit.MetricPointwise))
//	report, err := p.Run(ctx)
package pipeline
