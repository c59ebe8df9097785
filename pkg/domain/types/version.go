package types

// AppName is the service name used in logs and health responses
const AppName = "vertag"

// Version is the service version embedded in health responses and Sentry releases
const Version = "0.1.0"
