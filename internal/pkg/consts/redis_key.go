package consts

const (
	PipelineLockKey      = "sommpulse:pipeline:lock"
	ActiveAssociatesKey  = "sommpulse:settings:active_associates"
	HiddenAssociatesKey  = "sommpulse:settings:hidden_associates"
	BootstrapProgressKey = "sommpulse:bootstrap:progress"
)
