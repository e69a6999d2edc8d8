package ssz

import "github.com/sirupsen/logrus"

// Log is the package-level diagnostic logger. The codec never logs above
// Debug, and logrus defaults to Info, so a consuming application sees
// nothing unless it explicitly lowers the level to debug this package.
var Log = logrus.New()

func init() {
	Log.SetLevel(logrus.InfoLevel)
}
