package monitoring

import (
	"strings"
)

var receiverReplacer = strings.NewReplacer("(*", "", "(", "", ")", "")

// getSegmentName turns a runtime function name such as
// "bitbucket.org/x/internal/services.(*batch).Run" into "services.batch.Run".
func getSegmentName(fullFuncName string) string {
	name := fullFuncName
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}

	return receiverReplacer.Replace(name)
}
