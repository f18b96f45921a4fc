package core

import "github.com/dothezz/foldersync/pkg/filesystem"

// DBIdentityLookup resolves the file identity the in-sync database last
// recorded for a relative path on a given side, used to confirm a move
// candidate (spec §4.5 "move detection"). It returns false if the database
// has no entry for that path.
type DBIdentityLookup func(relativePath string, side Side) (filesystem.Identity, bool)

type moveCandidate struct {
	relativePath string
	pair         *FilePair
	side         Side // the X in create_X / delete_X
}

// MoveCandidateFile pairs a file pair with its full relative path within
// the base-pair's tree (PairState only carries a per-directory short name,
// so the caller flattening the tree must supply the ancestry).
type MoveCandidateFile struct {
	RelativePath string
	Pair         *FilePair
}

// DetectMoves scans a base-pair's file pairs for create_X / delete_X pairs
// whose identity matches, rewriting them to move_X_target / move_X_source
// (spec §4.5). A create_X pair P (currently present on the opposite side,
// about to be copied onto X) matches a delete_X pair Q (currently present
// on X, about to be removed) when the live identity of Q on side X equals
// the identity the database last recorded for P's relative path on side X
// — i.e. Q occupies, right now, the slot the database remembers P having
// occupied before: a rename in place, not a coincidence. Move detection
// does not alter category, direction, or any field besides Operation and
// MovePartner.
//
// files must include every FilePair in the base-pair's tree, each with its
// full relative path (callers collect these while walking the tree). When
// lookup is nil, move detection is skipped (equivalent to there being no
// prior database).
func DetectMoves(files []MoveCandidateFile, lookup DBIdentityLookup) {
	if lookup == nil {
		return
	}

	var creates, deletes []moveCandidate
	for _, f := range files {
		switch f.Pair.Operation {
		case OpCreateLeft:
			creates = append(creates, moveCandidate{relativePath: f.RelativePath, pair: f.Pair, side: Left})
		case OpCreateRight:
			creates = append(creates, moveCandidate{relativePath: f.RelativePath, pair: f.Pair, side: Right})
		case OpDeleteLeft:
			deletes = append(deletes, moveCandidate{relativePath: f.RelativePath, pair: f.Pair, side: Left})
		case OpDeleteRight:
			deletes = append(deletes, moveCandidate{relativePath: f.RelativePath, pair: f.Pair, side: Right})
		}
	}

	matched := make(map[*FilePair]bool)
	for _, create := range creates {
		if create.relativePath == "" {
			continue
		}
		priorIdentity, ok := lookup(create.relativePath, create.side)
		if !ok || !priorIdentity.Valid() {
			continue
		}

		for _, del := range deletes {
			if del.side != create.side || matched[del.pair] {
				continue
			}
			liveIdentity := identityOnSide(del.pair, del.side)
			if !liveIdentity.Valid() || liveIdentity != priorIdentity {
				continue
			}

			matched[del.pair] = true
			if create.side == Left {
				create.pair.Operation = OpMoveLeftTarget
				del.pair.Operation = OpMoveLeftSource
			} else {
				create.pair.Operation = OpMoveRightTarget
				del.pair.Operation = OpMoveRightSource
			}
			create.pair.MovePartner = del.pair.ID
			del.pair.MovePartner = create.pair.ID
			break
		}
	}
}

func identityOnSide(pair *FilePair, side Side) filesystem.Identity {
	if side == Left {
		return pair.Left.Identity
	}
	return pair.Right.Identity
}
