package internal

import (
	"flag"
	"fmt"
	"os"
)

var c *config

const (
	RunAddress     = "RUN_ADDRESS"
	DatabaseURI    = "DATABASE_URI"
	JWTSecret      = "JWT_SECRET"
	NotifyAMQPURI  = "NOTIFY_AMQP_URI"
	MetricsAddress = "METRICS_ADDRESS"
)

const (
	defaultRunAddress     = "localhost:8080"
	defaultMetricsAddress = "localhost:9090"
	defaultJWTSecret      = "secret"
)

const (
	host     = "localhost"
	port     = 5432
	user     = "postgres"
	password = "12345"
	database = "storefront"
)

type config struct {
	RunAddress     string
	DatabaseURI    string
	JWTSecret      string
	NotifyAMQPURI  string
	MetricsAddress string
}

func NewConfig() *config {
	c = new(config)

	defaultConn := fmt.Sprintf("host=%s port=%d user=%s "+
		"password=%s dbname=%s sslmode=disable",
		host, port, user, password, database)

	flag.StringVar(&c.RunAddress, "a", setEnvOrDefault(RunAddress, defaultRunAddress), "host to listen on")
	flag.StringVar(&c.DatabaseURI, "d", setEnvOrDefault(DatabaseURI, defaultConn), "postgres connection path")
	flag.StringVar(&c.JWTSecret, "s", setEnvOrDefault(JWTSecret, defaultJWTSecret), "secret the auth service signs tokens with")
	flag.StringVar(&c.NotifyAMQPURI, "n", setEnvOrDefault(NotifyAMQPURI, ""), "rabbitmq uri for notifications, empty to log them")
	flag.StringVar(&c.MetricsAddress, "m", setEnvOrDefault(MetricsAddress, defaultMetricsAddress), "prometheus metrics address, empty to disable")

	flag.Parse()
	return c
}

func setEnvOrDefault(env, def string) string {
	res, e := os.LookupEnv(env)
	if !e {
		res = def
	}
	return res
}
