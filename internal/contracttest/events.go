package contracttest

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

// EventsByName returns notifications with the given name in order of
// emission.
func EventsByName(aer *state.AppExecResult, name string) []state.NotificationEvent {
	var res []state.NotificationEvent
	for i := range aer.Events {
		if aer.Events[i].Name == name {
			res = append(res, aer.Events[i])
		}
	}
	return res
}

// CheckEvent checks notification name and parameters. Expected parameters
// can be util.Uint160, int, int64 or nil.
func CheckEvent(t testing.TB, ev state.NotificationEvent, name string, args ...any) {
	require.Equal(t, name, ev.Name)

	fields, ok := ev.Item.Value().([]stackitem.Item)
	require.True(t, ok)
	require.Len(t, fields, len(args), name)

	for i := range args {
		switch v := args[i].(type) {
		case nil:
			require.IsType(t, stackitem.Null{}, fields[i], "%s parameter #%d", name, i)
		case util.Uint160:
			b, err := fields[i].TryBytes()
			require.NoError(t, err)
			require.Equal(t, v.BytesBE(), b, "%s parameter #%d", name, i)
		case int:
			n, err := fields[i].TryInteger()
			require.NoError(t, err)
			require.EqualValues(t, v, n.Int64(), "%s parameter #%d", name, i)
		case int64:
			n, err := fields[i].TryInteger()
			require.NoError(t, err)
			require.Equal(t, v, n.Int64(), "%s parameter #%d", name, i)
		default:
			t.Fatalf("unsupported expected parameter type %T", v)
		}
	}
}
