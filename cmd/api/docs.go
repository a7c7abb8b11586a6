package main

// @title           Invoice API
// @version         1.0
// @description     API multi-tenant de faturamento: organizações, clientes e faturas com envio por email e PDF

// @contact.name   API Support

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Cabeçalho de autenticação JWT usando o esquema Bearer. Exemplo: "Bearer {token}"
