package app

import (
	"github.com/mbolis/online-survey/config"
	"github.com/mbolis/online-survey/store"
)

type App struct {
	store.Store
	config.Config
}
