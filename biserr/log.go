package biserr

import "github.com/CrystallineCore/biscuit/biscuitlog"

func logWarn(f *Fault) {
	biscuitlog.Warnf(f.Component, f.Detail, "kind", f.Kind, "err", f.Err)
}
