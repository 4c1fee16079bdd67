// Package fit selects reference curves for noisy training curves and
// classifies observations against the selected curves.
//
// The package has three stages, all pure functions over in-memory data:
//
//  1. Selection: for each training curve, SelectBest scans the reference
//     catalog in ascending ID order and picks the curve with the smallest sum
//     of squared errors. Ties keep the lower ID.
//  2. Tolerance: MaxDeviation measures the worst deviation between a training
//     curve and its selected reference curve under the configured Metric, and
//     Tolerance scales it by √2.
//  3. Classification: a Classifier assigns each Observation to at most one
//     selected reference curve, choosing the smallest accepted deviation.
//
// # Metrics
//
// Two deviation metrics are supported and the same one is used for
// tolerance and classification:
//
//   - MetricPointwise (default): vertical distance |y - y_ref| at an x that
//     must lie on the reference grid. An observation is accepted when
//     tolerance > d + d², or when it lies exactly on the curve (d = 0).
//   - MetricNearestEuclidean: Euclidean distance to the nearest point of the
//     reference polyline. An observation is accepted when d ≤ tolerance.
//
// # Usage
//
//	sel, err := fit.Select(training, catalog, fit.WithMetric(fit.MetricPointwise))
//	if err != nil {
//	    return err // errs.ErrPrecondition: the run cannot proceed
//	}
//
//	clf, err := fit.NewClassifier(sel, catalog)
//	if err != nil {
//	    return err
//	}
//
//	for _, obs := range observations {
//	    c := clf.Classify(obs)
//	    rec := c.Record() // persisted by the store
//	    _ = rec
//	}
//
// Errors are sentinels from package errs. Precondition failures (grid
// mismatch, empty catalog) abort a selection; an observation whose x is not
// on a reference grid only skips that pair and is reported in
// Classification.Skipped.
package fit
