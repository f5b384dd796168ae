package cnst

const (
	AppName     = "inventory"
	CommandName = "apiserver"
)
