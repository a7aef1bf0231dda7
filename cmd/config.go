package cmd

type Config struct {
	HTTPPort           string
	GatewayBaseURL     string
	GatewayToken       string
	CatalogRefreshSpec string
}
