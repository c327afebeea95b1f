// Package observable provides wrapper components for instrumenting command and query handlers
// with metrics and logging while keeping the handlers themselves free of observability code.
//
// Wrappers are applied at wiring time, not inside handler factories:
//
//	coreHandler := borrowbook.NewCommandHandler(store)
//
//	handler, err := observable.NewCommandWrapper[borrowbook.Command, borrowbook.Result](
//		coreHandler,
//		observable.WithCommandMetrics[borrowbook.Command, borrowbook.Result](metricsCollector),
//		observable.WithCommandContextualLogging[borrowbook.Command, borrowbook.Result](logger),
//	)
//
//	result, err := handler.Handle(ctx, command)
//
// Business refusals are logged at info level with business_outcome=refused and counted separately,
// they never show up as errors.
package observable
