package user

import (
	"context"
)

// Repository define a interface para operações de repositório de usuários
type Repository interface {
	// Create cria um novo usuário
	Create(ctx context.Context, u *User) error

	// FindByID busca um usuário pelo ID
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail busca um usuário pelo email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Update atualiza os dados de um usuário existente
	Update(ctx context.Context, u *User) error

	// ExistsByEmail verifica se já existe um usuário com o email
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// ExistsByUsername verifica se já existe um usuário com o nome de usuário
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}
