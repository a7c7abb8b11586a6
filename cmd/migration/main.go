package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/otienog1/invoice/internal/infrastructure/database"
)

func main() {
	// Carregar variáveis de ambiente
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: Arquivo .env não encontrado: %v", err)
	}

	var (
		path = flag.String("path", "migrations", "diretório das migrações")
		down = flag.Bool("down", false, "desfaz a última migração em vez de aplicar")
	)
	flag.Parse()

	if *down {
		if err := database.RollbackMigration(*path); err != nil {
			log.Fatalf("Erro ao desfazer migração: %v", err)
		}
		log.Println("Migração desfeita com sucesso!")
		return
	}

	if err := database.RunMigrations(*path); err != nil {
		log.Fatalf("Erro ao executar migrações: %v", err)
	}
	log.Println("Migrações executadas com sucesso!")
}
