package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cinecluster/internal/logging"
)

// ConnectMongo conecta y hace ping. uri vacío = historial deshabilitado (nil, nil).
func ConnectMongo(ctx context.Context, uri, dbName string) (*mongo.Database, error) {
	if uri == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("[mongo] error conectando: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("[mongo] ping falló: %w", err)
	}

	logging.Info().Str("db", dbName).Msg("[mongo] conectado")
	return client.Database(dbName), nil
}

// Disconnect cierra el cliente de la base (no hace nada si es nil).
func Disconnect(ctx context.Context, d *mongo.Database) error {
	if d == nil {
		return nil
	}
	return d.Client().Disconnect(ctx)
}
