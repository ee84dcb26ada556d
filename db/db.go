package db

import (
	"whatsnexus/config"
	"whatsnexus/models"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/sirupsen/logrus"
)

// Connect abre conexão com DB (sqlite3 por padrão) e faz automigrate das
// entidades do bridge (Cliente, Atendimento, Contato, Mensagem, Agente).
func Connect(conf config.Configuration) (*gorm.DB, error) {
	database := conf.Database
	if database == "" {
		database = "sqlite3"
	}

	var (
		db  *gorm.DB
		err error
	)

	if database == "postgres" || database == "postgresql" {
		logrus.Info("Utilizando conexão com o postgresql...")
		path := "host=" + conf.DbHost + " port=" + conf.DbPort
		path += " user=" + conf.DbUser + " dbname=" + conf.DbName
		path += " password=" + conf.DbPass
		db, err = gorm.Open("postgres", path)
	} else {
		logrus.Info("Utilizando conexão com o sqlite3...")
		db, err = gorm.Open("sqlite3", "db/database.db")
	}

	if err != nil {
		logrus.WithError(err).Error("falha ao conectar no banco")
		return nil, err
	}

	db.AutoMigrate(
		&models.Cliente{},
		&models.Agente{},
		&models.Atendimento{},
		&models.Contato{},
		&models.Mensagem{},
	)

	return db, nil
}
