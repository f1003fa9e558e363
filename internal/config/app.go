package config

type AppConfig struct {
	Server ServerConfig
	Lobby  LobbyConfig
	Log    LogConfig
}

func LoadApp() (AppConfig, error) {
	logCfg, err := LoadLog()
	if err != nil {
		return AppConfig{}, err
	}
	serverCfg, err := LoadServer()
	if err != nil {
		return AppConfig{}, err
	}
	lobbyCfg, err := LoadLobby()
	if err != nil {
		return AppConfig{}, err
	}
	return AppConfig{
		Server: serverCfg,
		Lobby:  lobbyCfg,
		Log:    logCfg,
	}, nil
}
