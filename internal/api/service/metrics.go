package service

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var (
	tracer = otel.Tracer("api.service")
	meter  = otel.Meter("api.service")

	usersCreated, _    = meter.Int64Counter("tracker.users.created", metric.WithDescription("Users created."))
	exercisesLogged, _ = meter.Int64Counter("tracker.exercises.logged", metric.WithDescription("Exercises logged."))
	exerciseMinutes, _ = meter.Int64Histogram("tracker.exercises.duration",
		metric.WithDescription("Duration of logged exercises."),
		metric.WithUnit("min"),
	)
)
