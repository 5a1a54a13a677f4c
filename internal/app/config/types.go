package config

type (
	DriverConfig struct {
		MongoDB  MongoDB
		Redis    Redis
		Logger   Logger
		RabbitMQ RabbitMQ
	}
	MongoDB struct {
		URI      string
		Port     string
		Host     string
		Username string
		Password string
		DbName   string
	}
	Redis struct {
		Enabled  bool
		Host     string
		Port     string
		Password string
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
	RabbitMQ struct {
		Enabled  bool
		Port     string
		Host     string
		Username string
		Password string
	}
)

type (
	InternalConfig struct {
		App App
	}
	App struct {
		Env                        string
		Port                       string
		Version                    string
		EndpointPrefix             string
		RabbitMQPatientEventQueue  string
		MaxRequests                int
		WriteRateLimit             int
		ShutdownTimeout            int
		RequestBodyLimitInMegabyte int
	}
)
