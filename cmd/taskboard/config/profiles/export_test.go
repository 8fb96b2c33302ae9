package profiles

var LoadWithEnv = load
