package skillcmd

// FeatureGates exposes runtime feature toggles required by skill command
// handlers. Callers should supply closures that read from the runtime
// configuration so handlers stay decoupled from it while honouring flags.
type FeatureGates struct {
	LinksEnabled func() bool
}

func (g FeatureGates) linksEnabled() bool {
	if g.LinksEnabled == nil {
		return true
	}
	return g.LinksEnabled()
}
