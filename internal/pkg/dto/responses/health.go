package responses

type HealthCheck struct {
	MongoDB  string `json:"mongodb"`
	Redis    string `json:"redis"`
	RabbitMQ string `json:"rabbitmq"`
}
