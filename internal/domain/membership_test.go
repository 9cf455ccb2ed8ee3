package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildMembershipKeepsFirstOccurrenceOrder(t *testing.T) {
	records := []ActivityRecord{
		{Runner: "Bob", Team: "Hares"},
		{Runner: "Cara", Team: "Owls"},
		{Runner: "Alice", Team: "Hares"},
		{Runner: "Bob", Team: "Hares"},
		{Runner: "Bob", Team: "Owls"},
	}

	m := BuildMembership(records)
	require.Equal(t, []string{"Hares", "Owls"}, m.Teams())

	hares, ok := m.Members("Hares")
	require.True(t, ok)
	require.Equal(t, []string{"Bob", "Alice"}, hares)

	owls, ok := m.Members("Owls")
	require.True(t, ok)
	require.Equal(t, []string{"Cara", "Bob"}, owls)

	_, ok = m.Members("Foxes")
	require.False(t, ok)
}

func TestMembershipReturnsCopies(t *testing.T) {
	m := BuildMembership([]ActivityRecord{{Runner: "Bob", Team: "Hares"}})
	members, _ := m.Members("Hares")
	members[0] = "Mallory"

	again, _ := m.Members("Hares")
	require.Equal(t, []string{"Bob"}, again)
}

func TestRostersPreferObservedMembership(t *testing.T) {
	rosters := Rosters{
		Observed: BuildMembership([]ActivityRecord{{Runner: "Bob", Team: "Hares"}}),
		Static: StaticRosters{
			"Hares": {"Alice", "Bob", "Cara"},
			"Foxes": {"Dan"},
		},
	}

	require.Equal(t, []string{"Bob"}, rosters.Members("Hares"))
	require.Equal(t, []string{"Dan"}, rosters.Members("Foxes"))
	require.Empty(t, rosters.Members("Owls"))
}

func TestRostersConfiguredOnly(t *testing.T) {
	rosters := Rosters{
		Observed: BuildMembership([]ActivityRecord{{Runner: "Bob", Team: "Hares"}}),
		Static:   StaticRosters{"Owls": nil, "Hares": {"Bob"}, "Foxes": {"Dan"}},
	}
	require.Equal(t, []string{"Foxes", "Owls"}, rosters.ConfiguredOnly())
	require.True(t, rosters.Has("Owls"))
	require.False(t, rosters.Has("Badgers"))
	require.NotNil(t, rosters.Members("Owls"))
	require.Empty(t, rosters.Members("Owls"))
}
