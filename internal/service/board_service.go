package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"moodboard/internal/domain"
	"moodboard/internal/pointer"
)

// ─────────────────────────────────────────────────────────────
// Board Service: the board state manager
// ─────────────────────────────────────────────────────────────

// DefaultBoardKey is the storage key holding the serialized board.
const DefaultBoardKey = "moodBoardItems"

// Events emitted to front-ends.
const (
	EventBoardChanged     = "board:changed"
	EventItemPlaced       = "board:item-placed"
	EventBoardCleared     = "board:cleared"
	EventPendingDisplaced = "board:pending-displaced"
)

// PendingItem is an item that has been added but not placed yet. It follows
// the pointer until it is dropped on the board.
type PendingItem struct {
	ID      string
	Kind    domain.ItemKind
	Content string

	placement pointer.Placement
}

// BoardService keeps the ordered item list and its persisted copy in sync.
// After every completed mutation the list in memory equals the stored record.
type BoardService struct {
	store   domain.KVStore
	key     string
	emitter EventEmitter

	mu      sync.Mutex
	items   []domain.Item
	pending *PendingItem
	drags   map[int]*pointer.Drag
}

// NewBoardService creates a BoardService persisting under key.
func NewBoardService(store domain.KVStore, key string, emitter EventEmitter) *BoardService {
	if key == "" {
		key = DefaultBoardKey
	}
	return &BoardService{
		store:   store,
		key:     key,
		emitter: emitter,
		items:   []domain.Item{},
		drags:   make(map[int]*pointer.Drag),
	}
}

// Key returns the storage key of the board record.
func (s *BoardService) Key() string {
	return s.key
}

// ── Loading ────────────────────────────────────────────────

// LoadBoard replaces the in-memory board with the persisted one. Missing or
// corrupt records load as an empty board.
func (s *BoardService) LoadBoard(ctx context.Context) []domain.Item {
	items, err := s.readStored(ctx)
	if err != nil {
		slog.Warn("board: unreadable record, starting empty", "key", s.key, "error", err)
		items = []domain.Item{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
	s.cancelDragsLocked()
	return cloneItems(s.items)
}

// Reload re-reads the stored record and adopts it if it differs from the
// in-memory board. Used when another process writes to the same store.
func (s *BoardService) Reload(ctx context.Context) bool {
	// Read under the lock so a concurrent write can't be overwritten by a
	// stale copy.
	s.mu.Lock()
	items, err := s.readStored(ctx)
	if err != nil {
		s.mu.Unlock()
		slog.Warn("board: reload skipped", "key", s.key, "error", err)
		return false
	}
	if equalItems(items, s.items) {
		s.mu.Unlock()
		return false
	}
	s.items = items
	s.cancelDragsLocked()
	snapshot := cloneItems(s.items)
	s.mu.Unlock()

	slog.Info("board reloaded from store", "items", len(snapshot))
	s.emit(ctx, EventBoardChanged, snapshot)
	return true
}

func (s *BoardService) readStored(ctx context.Context) ([]domain.Item, error) {
	raw, found, err := s.store.Get(ctx, s.key)
	if err != nil {
		return nil, err
	}
	if !found {
		return []domain.Item{}, nil
	}
	return DecodeBoard(raw)
}

// Items returns a copy of the board.
func (s *BoardService) Items() []domain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneItems(s.items)
}

// State returns the board plus the pending item, if any.
func (s *BoardService) State() domain.BoardState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := domain.BoardState{Items: cloneItems(s.items)}
	if s.pending != nil {
		v := s.pending.viewLocked()
		st.Pending = &v
	}
	return st
}

// ── Adding and placing ─────────────────────────────────────

// AddItem creates a pending item that follows the pointer. The board and the
// store are untouched until the item is placed. A previous pending item is
// discarded.
func (s *BoardService) AddItem(ctx context.Context, kind domain.ItemKind, content string) (*PendingItem, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	p := &PendingItem{
		ID:      uuid.New().String(),
		Kind:    kind,
		Content: content,
	}
	p.placement.Start(pointer.Size{})

	s.mu.Lock()
	displaced := s.pending
	s.pending = p
	s.mu.Unlock()

	if displaced != nil {
		slog.Debug("pending item displaced", "id", displaced.ID, "by", p.ID)
		s.emit(ctx, EventPendingDisplaced, displaced.ID)
	}
	return p, nil
}

// Pending returns the item currently following the pointer.
func (s *BoardService) Pending() (*PendingItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending, s.pending != nil
}

// PendingView returns a snapshot of the pending item.
func (s *BoardService) PendingView() (domain.PendingView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return domain.PendingView{}, false
	}
	return s.pending.viewLocked(), true
}

// SetPendingSize records the rendered size of the pending item so it can be
// centred under the pointer.
func (s *BoardService) SetPendingSize(size pointer.Size) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return ErrNoPendingItem
	}
	s.pending.placement.Resize(size)
	return nil
}

// TrackPointer moves the pending item so it is centred on p.
func (s *BoardService) TrackPointer(p pointer.Point) (domain.Position, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return domain.Position{}, false
	}
	at, ok := s.pending.placement.Follow(p)
	if !ok {
		return domain.Position{}, false
	}
	return toPosition(at), true
}

// CancelPending drops the pending item without placing it.
func (s *BoardService) CancelPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return false
	}
	s.pending.placement.Cancel()
	s.pending = nil
	return true
}

// PlaceItem commits pending at pos, appends it and persists the board.
// It returns the index assigned to the new item.
func (s *BoardService) PlaceItem(ctx context.Context, pending *PendingItem, pos domain.Position) (int, error) {
	s.mu.Lock()
	if pending == nil || s.pending != pending {
		s.mu.Unlock()
		return -1, ErrNoPendingItem
	}
	if !pending.placement.DropAt(toPoint(pos)) {
		s.mu.Unlock()
		return -1, ErrNoPendingItem
	}
	return s.commitLocked(ctx, pending, pos)
}

// PlaceAtPointer drops the pending item centred on p.
func (s *BoardService) PlaceAtPointer(ctx context.Context, p pointer.Point) (int, error) {
	s.mu.Lock()
	pending := s.pending
	if pending == nil {
		s.mu.Unlock()
		return -1, ErrNoPendingItem
	}
	at, ok := pending.placement.Drop(p)
	if !ok {
		s.mu.Unlock()
		return -1, ErrNoPendingItem
	}
	return s.commitLocked(ctx, pending, toPosition(at))
}

// InsertItem appends a finished item at pos without going through the
// pending state. Used by non-interactive callers such as the MCP tools.
func (s *BoardService) InsertItem(ctx context.Context, kind domain.ItemKind, content string, pos domain.Position) (int, domain.Item, error) {
	if !kind.Valid() {
		return -1, domain.Item{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return -1, domain.Item{}, ErrEmptyContent
	}
	item := domain.Item{Kind: kind, Content: content, Position: pos}
	s.mu.Lock()
	index, err := s.appendLocked(ctx, item)
	if err != nil {
		return -1, domain.Item{}, err
	}
	return index, item, nil
}

// commitLocked appends the placed item and persists. Called with s.mu held;
// releases it.
func (s *BoardService) commitLocked(ctx context.Context, pending *PendingItem, pos domain.Position) (int, error) {
	s.pending = nil
	return s.appendLocked(ctx, domain.Item{Kind: pending.Kind, Content: pending.Content, Position: pos})
}

func (s *BoardService) appendLocked(ctx context.Context, item domain.Item) (int, error) {
	s.items = append(s.items, item)
	index := len(s.items) - 1

	if err := s.persistLocked(ctx); err != nil {
		s.items = s.items[:index]
		s.mu.Unlock()
		return -1, fmt.Errorf("place item: %w", err)
	}
	snapshot := cloneItems(s.items)
	s.mu.Unlock()

	slog.Debug("item placed", "index", index, "kind", item.Kind, "left", item.Position.Left, "top", item.Position.Top)
	s.emit(ctx, EventItemPlaced, map[string]any{"index": index, "item": item})
	s.emit(ctx, EventBoardChanged, snapshot)
	return index, nil
}

// ── Moving ─────────────────────────────────────────────────

// MoveItem sets the position of the item at index and persists the board.
// An invalid index returns ErrIndexOutOfRange and leaves the board unchanged.
func (s *BoardService) MoveItem(ctx context.Context, index int, pos domain.Position) error {
	s.mu.Lock()
	if index < 0 || index >= len(s.items) {
		n := len(s.items)
		s.mu.Unlock()
		return fmt.Errorf("%w: have %d, got %d", ErrIndexOutOfRange, n, index)
	}

	prev := s.items[index].Position
	s.items[index].Position = pos
	if err := s.persistLocked(ctx); err != nil {
		s.items[index].Position = prev
		s.mu.Unlock()
		return fmt.Errorf("move item: %w", err)
	}
	snapshot := cloneItems(s.items)
	s.mu.Unlock()

	s.emit(ctx, EventBoardChanged, snapshot)
	return nil
}

// BeginDrag starts a drag of the item at index. p is the pointer position.
func (s *BoardService) BeginDrag(index int, p pointer.Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.items) {
		return fmt.Errorf("%w: have %d, got %d", ErrIndexOutOfRange, len(s.items), index)
	}
	d, ok := s.drags[index]
	if !ok {
		d = &pointer.Drag{}
		s.drags[index] = d
	}
	d.Press(p, toPoint(s.items[index].Position))
	return nil
}

// DragTo returns where the dragged item should be drawn for pointer p.
// The board is not modified until EndDrag.
func (s *BoardService) DragTo(index int, p pointer.Point) (domain.Position, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drags[index]
	if !ok {
		return domain.Position{}, false
	}
	at, ok := d.Move(p)
	if !ok {
		return domain.Position{}, false
	}
	return toPosition(at), true
}

// EndDrag finishes a drag and stores the final position. moved is false when
// nothing was stored: no drag was in progress, or its item disappeared in the
// meantime (e.g. the board was cleared or reloaded).
func (s *BoardService) EndDrag(ctx context.Context, index int, p pointer.Point) (pos domain.Position, moved bool, err error) {
	s.mu.Lock()
	d, ok := s.drags[index]
	if !ok {
		s.mu.Unlock()
		return domain.Position{}, false, nil
	}
	at, ok := d.Release(p)
	delete(s.drags, index)
	s.mu.Unlock()
	if !ok {
		return domain.Position{}, false, nil
	}

	pos = toPosition(at)
	if err := s.MoveItem(ctx, index, pos); err != nil {
		if isIndexError(err) {
			slog.Debug("drag released on a missing item", "index", index)
			return domain.Position{}, false, nil
		}
		return domain.Position{}, false, err
	}
	return pos, true, nil
}

// CancelDrag abandons a drag without storing anything.
func (s *BoardService) CancelDrag(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.drags[index]; ok {
		d.Cancel()
		delete(s.drags, index)
	}
}

// Dragging reports whether the item at index is being dragged.
func (s *BoardService) Dragging(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drags[index]
	return ok && d.Tracking()
}

// ── Clearing ───────────────────────────────────────────────

// ClearBoard drops every item, the pending item and the stored record. If the
// store refuses the delete, the board is left as it was.
func (s *BoardService) ClearBoard(ctx context.Context) error {
	s.mu.Lock()
	if err := s.store.Delete(ctx, s.key); err != nil {
		s.mu.Unlock()
		slog.Error("board: clear storage failed", "key", s.key, "error", err)
		return fmt.Errorf("clear board: %w", err)
	}
	s.items = []domain.Item{}
	if s.pending != nil {
		s.pending.placement.Cancel()
		s.pending = nil
	}
	s.cancelDragsLocked()
	s.mu.Unlock()

	s.emit(ctx, EventBoardCleared, nil)
	s.emit(ctx, EventBoardChanged, []domain.Item{})
	return nil
}

// ── helpers ────────────────────────────────────────────────

func (s *BoardService) persistLocked(ctx context.Context) error {
	data, err := EncodeBoard(s.items)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, s.key, data); err != nil {
		slog.Error("board: persist failed", "key", s.key, "error", err)
		return err
	}
	return nil
}

func (s *BoardService) cancelDragsLocked() {
	for i, d := range s.drags {
		d.Cancel()
		delete(s.drags, i)
	}
}

func (s *BoardService) emit(ctx context.Context, event string, data any) {
	if s.emitter != nil {
		s.emitter.Emit(ctx, event, data)
	}
}

func (p *PendingItem) viewLocked() domain.PendingView {
	return domain.PendingView{
		ID:       p.ID,
		Kind:     p.Kind,
		Content:  p.Content,
		Position: toPosition(p.placement.Position()),
	}
}

func toPosition(p pointer.Point) domain.Position {
	return domain.Position{Left: p.X, Top: p.Y}
}

func toPoint(p domain.Position) pointer.Point {
	return pointer.Point{X: p.Left, Y: p.Top}
}

func cloneItems(items []domain.Item) []domain.Item {
	out := make([]domain.Item, len(items))
	copy(out, items)
	return out
}

func equalItems(a, b []domain.Item) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
