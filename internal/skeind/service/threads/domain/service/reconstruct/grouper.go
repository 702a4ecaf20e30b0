package reconstruct

import (
	"sort"
	"time"

	"github.com/skeinlab/skein/internal/skeind/service/threads/domain/entity"
	"github.com/skeinlab/skein/pkg/utils/json"
)

// ParallelSpawnWindow is the wall-clock proximity threshold under which two
// sub-agent spawns are considered concurrent. Clustering is anchored to the
// first spawn seen in the window (the seed), not pairwise distance: a spawn
// joins a cluster iff its timestamp is within this window of the seed's.
// Chains of spawns that are each within the window of their neighbor but
// not of the seed do not merge.
const ParallelSpawnWindow = 2000 * time.Millisecond

// spawnInfo accumulates everything attached to one spawn id during
// classification. It holds index references only; event values stay in the
// caller's snapshot.
type spawnInfo struct {
	spawn   *entity.Event
	nested  []*entity.Event
	polls   []*entity.Event
	cluster int // 1-based cluster number, 0 = not yet clustered
}

// GroupThread reorganizes the flat event list into an ordered list of
// display groups: plain messages, collapsed sub-agent blocks, and clusters
// of concurrently-spawned sub-agent blocks.
//
// Concatenated, the groups preserve the arrival order of top-level events;
// each spawn and its descendants collapse into a single unit at the spawn's
// position. The function is pure and never mutates events.
//
// A nested call whose declared parent spawn never appears in the feed is
// dropped entirely: it is neither attached nor emitted top-level.
func GroupThread(events []*entity.Event, index ResultIndex) []*entity.DisplayGroup {
	// Classification: spawn ids first, so nested calls attach by id
	// regardless of whether they arrive before or after their spawn.
	spawns := make(map[string]*spawnInfo)
	var spawnOrder []*spawnInfo
	for _, ev := range events {
		if !ev.IsSpawn() {
			continue
		}
		si := &spawnInfo{spawn: ev}
		spawns[ev.Tool.ToolID] = si
		spawnOrder = append(spawnOrder, si)
	}

	for _, ev := range events {
		if !ev.IsToolCall() || ev.Tool.ParentToolUseID == "" {
			continue
		}
		parent, ok := spawns[ev.Tool.ParentToolUseID]
		if !ok {
			// Orphan: unknown parent, invisible in output.
			continue
		}
		parent.nested = append(parent.nested, ev)

		if ev.IsPoll() && ev.Tool.Subagent != nil {
			if target, ok := spawns[ev.Tool.Subagent.TaskID]; ok && target.spawn.IsBackgroundSpawn() {
				target.polls = append(target.polls, ev)
			}
		}
	}

	clusters := clusterSpawns(spawnOrder)

	// Emission in arrival order. Results never surface as groups; nested
	// calls were consumed above; a cluster is emitted once, at the
	// position of its first-encountered member.
	groups := make([]*entity.DisplayGroup, 0, len(events))
	emitted := make(map[int]bool)
	for _, ev := range events {
		if ev.Kind == entity.EventKindToolResult {
			continue
		}
		if ev.IsToolCall() && ev.Tool.ParentToolUseID != "" {
			if _, ok := spawns[ev.Tool.ParentToolUseID]; ok {
				continue
			}
			// Orphans fall through only when they are not results and not
			// themselves spawns; a non-spawn orphan is never grouped.
			if !ev.IsSpawn() {
				continue
			}
		}

		if ev.IsSpawn() {
			si := spawns[ev.Tool.ToolID]
			members := clusters[si.cluster-1]
			if len(members) > 1 {
				if emitted[si.cluster] {
					continue
				}
				emitted[si.cluster] = true
				parallel := make([]*entity.SubagentData, 0, len(members))
				for _, m := range members {
					parallel = append(parallel, resolveSubagent(m, index, len(members)))
				}
				groups = append(groups, &entity.DisplayGroup{
					Kind:     entity.GroupKindParallelSubagents,
					Parallel: parallel,
				})
				continue
			}
			groups = append(groups, &entity.DisplayGroup{
				Kind:     entity.GroupKindSubagent,
				Subagent: resolveSubagent(si, index, 1),
			})
			continue
		}

		msg := &entity.MessageData{Event: ev}
		if ev.IsToolCall() {
			msg.Result = index[ev.Tool.ToolID]
		}
		groups = append(groups, &entity.DisplayGroup{
			Kind:    entity.GroupKindMessage,
			Message: msg,
		})
	}
	return groups
}

// clusterSpawns assigns every spawn a cluster in timestamp order. Each
// not-yet-clustered spawn seeds a new cluster, then claims all later
// unclustered spawns within ParallelSpawnWindow of the seed's timestamp.
// Returned clusters hold members in timestamp order.
func clusterSpawns(spawnOrder []*spawnInfo) [][]*spawnInfo {
	byTime := make([]*spawnInfo, len(spawnOrder))
	copy(byTime, spawnOrder)
	sort.SliceStable(byTime, func(i, j int) bool {
		return byTime[i].spawn.Timestamp.Before(byTime[j].spawn.Timestamp)
	})

	var clusters [][]*spawnInfo
	for i, seed := range byTime {
		if seed.cluster != 0 {
			continue
		}
		id := len(clusters) + 1
		seed.cluster = id
		members := []*spawnInfo{seed}
		for _, cand := range byTime[i+1:] {
			if cand.cluster != 0 {
				continue
			}
			if cand.spawn.Timestamp.Sub(seed.spawn.Timestamp) <= ParallelSpawnWindow {
				cand.cluster = id
				members = append(members, cand)
			}
		}
		clusters = append(clusters, members)
	}
	return clusters
}

// resolveSubagent materializes one spawn into its display payload: nested
// calls, the spawn's own result, polling calls, and, for background
// spawns, the liveness state reported by the most recent poll.
func resolveSubagent(si *spawnInfo, index ResultIndex, clusterSize int) *entity.SubagentData {
	data := &entity.SubagentData{
		Spawn:        si.spawn,
		NestedCalls:  si.nested,
		SpawnResult:  index[si.spawn.Tool.ToolID],
		PollingCalls: si.polls,
		ClusterSize:  clusterSize,
	}
	if si.spawn.IsBackgroundSpawn() {
		data.LastPollStatus = lastPollStatus(si.polls, index)
	}
	return data
}

// lastPollStatus derives liveness from the latest polling call (highest
// index, i.e. most recently issued). A poll with no result yet, or a
// background spawn with no polls at all, reads as still running: the
// spawn's own terminal result does not factor in here.
func lastPollStatus(polls []*entity.Event, index ResultIndex) entity.PollStatus {
	if len(polls) == 0 {
		return entity.PollStatusRunning
	}
	last := polls[len(polls)-1]
	result := index[last.Tool.ToolID]
	if result == nil || result.Result == nil {
		return entity.PollStatusRunning
	}
	return pollStatusFromResult(result.Result)
}

// pollStatusFromResult interprets a polling call's result content. The
// poller reports {"status": "..."} in the result body; an errored result
// always reads as failed, and a successful result with no recognizable
// status reads as completed.
func pollStatusFromResult(payload *entity.ResultPayload) entity.PollStatus {
	if payload.IsError {
		return entity.PollStatusFailed
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal([]byte(payload.Content), &body); err == nil {
		switch entity.PollStatus(body.Status) {
		case entity.PollStatusRunning:
			return entity.PollStatusRunning
		case entity.PollStatusFailed:
			return entity.PollStatusFailed
		case entity.PollStatusCompleted:
			return entity.PollStatusCompleted
		}
	}
	return entity.PollStatusCompleted
}

// PendingToolIDs walks the groups and collects the tool ids of every call
// that has no result yet in the index, in group order. The rendering layer
// uses these to look up short-lived activity hints supplied out of band.
func PendingToolIDs(groups []*entity.DisplayGroup, index ResultIndex) []string {
	var pending []string
	add := func(ev *entity.Event) {
		if ev.IsToolCall() && index[ev.Tool.ToolID] == nil {
			pending = append(pending, ev.Tool.ToolID)
		}
	}
	addSubagent := func(d *entity.SubagentData) {
		add(d.Spawn)
		for _, nc := range d.NestedCalls {
			add(nc)
		}
	}
	for _, g := range groups {
		switch g.Kind {
		case entity.GroupKindMessage:
			add(g.Message.Event)
		case entity.GroupKindSubagent:
			addSubagent(g.Subagent)
		case entity.GroupKindParallelSubagents:
			for _, d := range g.Parallel {
				addSubagent(d)
			}
		}
	}
	return pending
}
