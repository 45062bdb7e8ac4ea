// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package gmx

import (
	"encoding/binary"

	"github.com/google/uuid"
)

// This file defines the in-memory project model spec.md §3 describes.
// Every entity here is created by exactly one reader during a single pass
// (§4.4), never mutated afterward, and owned entirely by the Project that
// contains it — there is no cross-entity aliasing or back-reference.

// Project is the root of the decoded model (§3, §4.6). It starts out empty
// with Generation == GenerationUnknown; each resource reader in the
// orchestrator (§4.5) fills in its own slice as it runs.
type Project struct {
	Generation Generation `json:"generation"`
	Debug      bool       `json:"debug"`
	Pro        bool       `json:"pro"`
	GameID     uint32     `json:"game_id"`
	GUID       [4]uint32  `json:"guid"`

	LastInstanceID uint32 `json:"last_instance_id"`
	LastTileID     uint32 `json:"last_tile_id"`

	Settings Settings `json:"settings"`
	Help     Help     `json:"help"`

	Extensions []Extension `json:"extensions,omitempty"`
	Triggers   []Trigger   `json:"triggers,omitempty"`
	Constants  []Constant  `json:"constants,omitempty"`
	Sounds     []Sound     `json:"sounds,omitempty"`
	Sprites    []Sprite    `json:"sprites,omitempty"`
	Backgrounds []Background `json:"backgrounds,omitempty"`
	Paths      []Path      `json:"paths,omitempty"`
	Scripts    []Script    `json:"scripts,omitempty"`
	Fonts      []Font      `json:"fonts,omitempty"`
	Timelines  []Timeline  `json:"timelines,omitempty"`
	Objects    []Object    `json:"objects,omitempty"`
	Rooms      []Room      `json:"rooms,omitempty"`
	Includes   []Include   `json:"includes,omitempty"`

	LibraryInitScripts []string `json:"library_init_scripts,omitempty"`
	RoomOrder          []uint32 `json:"room_order,omitempty"`

	// Anomalies collects non-fatal notices observed while decoding (see
	// anomaly.go). They never affect control flow.
	Anomalies []string `json:"anomalies,omitempty"`

	// Overlay holds whatever bytes remain unconsumed after the last
	// orchestrator step for this generation's plan (see overlay.go).
	// spec.md §4.5 explicitly allows and ignores this trailing "garbage".
	Overlay []byte `json:"-"`
}

// GUIDString renders the project's 4x u32 GUID as a standard UUID string,
// the same way other_examples' ext4 superblock reader turns its on-disk
// 16-byte UUID fields into displayable identifiers with uuid.FromBytes.
func (p *Project) GUIDString() string {
	var raw [16]byte
	for i, word := range p.GUID {
		binary.LittleEndian.PutUint32(raw[i*4:], word)
	}
	id, err := uuid.FromBytes(raw[:])
	if err != nil {
		return ""
	}
	return id.String()
}

// ColorType identifies the channel layout of an Image's pixel buffer.
type ColorType int

const (
	ColorRGBA ColorType = iota
	ColorGray
)

func (c ColorType) String() string {
	if c == ColorGray {
		return "gray"
	}
	return "rgba"
}

// Settings holds the project's display/window configuration (§3, §4.4).
// Several fields are only present at certain outer versions; the
// zero-value is the correct default for a field the running generation
// never populates.
type Settings struct {
	Fullscreen      bool   `json:"fullscreen"`
	Interpolation   bool   `json:"interpolation"`
	HideBorder      bool   `json:"hide_border"`
	ShowCursor      bool   `json:"show_cursor"`
	Scaling         int32  `json:"scaling"`
	Resizable       bool   `json:"resizable"`
	AlwaysOnTop     bool   `json:"always_on_top"`
	BackgroundColor uint32 `json:"background_color"`

	SetResolution bool   `json:"set_resolution"`
	ColorDepth    uint32 `json:"color_depth"`
	Resolution    uint32 `json:"resolution"`
	Frequency     uint32 `json:"frequency"`
	HideButtons   bool   `json:"hide_buttons"`
	Vsync         bool   `json:"vsync"`

	DisableScreensaver bool `json:"disable_screensaver"`

	DefaultF4   bool `json:"default_f4"`
	DefaultF1   bool `json:"default_f1"`
	DefaultEsc  bool `json:"default_esc"`
	DefaultF5   bool `json:"default_f5"`
	DefaultF9   bool `json:"default_f9"`
	CloseAsEsc  bool `json:"close_as_esc"`
	Priority    uint32 `json:"priority"`
	Freeze      bool   `json:"freeze"`

	LoadingBar        uint32 `json:"loading_bar"`
	LoadingBarBack    []byte `json:"-"`
	LoadingBarFront   []byte `json:"-"`
	LoadingBackground []byte `json:"-"`

	LoadTransparent bool   `json:"load_transparent"`
	LoadAlpha       uint32 `json:"load_alpha"`
	LoadScale       bool   `json:"load_scale"`

	ErrorDisplay bool `json:"error_display"`
	ErrorLog     bool `json:"error_log"`
	ErrorAbort   bool `json:"error_abort"`

	UninitializedZero          bool `json:"uninitialized_zero"`
	UninitializedArgumentsError bool `json:"uninitialized_arguments_error"`
}

// Help mirrors the in-game help window's content and geometry.
type Help struct {
	BackgroundColor uint32 `json:"background_color"`
	SeparateWindow  bool   `json:"separate_window"`
	Caption         string `json:"caption"`
	Left            int32  `json:"left"`
	Top             int32  `json:"top"`
	Width           int32  `json:"width"`
	Height          int32  `json:"height"`
	ShowBorder      bool   `json:"show_border"`
	AllowResize     bool   `json:"allow_resize"`
	AlwaysOnTop     bool   `json:"always_on_top"`
	FreezeGame      bool   `json:"freeze_game"`
	Content         string `json:"content"`
}

// Trigger is a named condition checked at a given moment (§3).
type Trigger struct {
	ID           uint32 `json:"id"`
	Name         string `json:"name"`
	Condition    string `json:"condition"`
	CheckMoment  uint32 `json:"check_moment"`
	ConstantName string `json:"constant_name"`
}

// Constant is a named compile-time value.
type Constant struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Sound is one audio resource.
type Sound struct {
	ID       uint32 `json:"id"`
	Name     string `json:"name"`
	Kind     uint32 `json:"kind"`
	Filetype string `json:"filetype"`
	Filename string `json:"filename"`
	Data     []byte `json:"-"`
	Effects  uint32 `json:"effects"`
	Volume   float64 `json:"volume"`
	Pan      float64 `json:"pan"`
	Preload  bool   `json:"preload"`
}

// Image is a raw, already-normalized-to-RGBA (or gray) pixel buffer.
type Image struct {
	Width     uint32    `json:"width"`
	Height    uint32    `json:"height"`
	Data      []byte    `json:"-"`
	ColorType ColorType `json:"color_type"`
}

// Sprite is an ordered set of animation frames plus their collision masks.
type Sprite struct {
	ID     uint32      `json:"id"`
	Name   string      `json:"name"`
	Origin [2]int32    `json:"origin"`
	Frames []Image     `json:"frames,omitempty"`
	Masks  []SpriteMask `json:"masks,omitempty"`
}

// SpriteMask is a packed-boolean collision bitmap plus its bounding box.
type SpriteMask struct {
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
	Left   int32  `json:"left"`
	Right  int32  `json:"right"`
	Bottom int32  `json:"bottom"`
	Top    int32  `json:"top"`
	// Bits is a packed boolean bitmap of length Width*Height: Bits[y*Width+x]
	// is true iff pixel (x,y) collides.
	Bits []bool `json:"-"`
}

// Background is a single static backdrop image.
type Background struct {
	ID    uint32 `json:"id"`
	Name  string `json:"name"`
	Image Image  `json:"image"`
}

// Path is an ordered list of waypoints a moving instance can follow.
type Path struct {
	ID             uint32      `json:"id"`
	Name           string      `json:"name"`
	ConnectionType uint32      `json:"connection_type"`
	Closed         bool        `json:"closed"`
	Precision      uint32      `json:"precision"`
	Points         []PathPoint `json:"points,omitempty"`
}

// PathPoint is one waypoint along a Path.
type PathPoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Speed float64 `json:"speed"`
}

// Script is a single named block of source code.
type Script struct {
	ID     uint32 `json:"id"`
	Name   string `json:"name"`
	Source string `json:"source"`
}

// Font describes a rasterized character range plus its glyph atlas.
type Font struct {
	ID         uint32        `json:"id"`
	Name       string        `json:"name"`
	FontName   string        `json:"font_name"`
	Size       uint32        `json:"size"`
	Bold       bool          `json:"bold"`
	Italic     bool          `json:"italic"`
	RangeStart uint32        `json:"range_start"`
	RangeEnd   uint32        `json:"range_end"`
	Charset    uint32        `json:"charset"`
	AALevel    uint32        `json:"aa_level"`
	Atlas      FontAtlas     `json:"atlas"`
}

// FontAtlas is the glyph texture a Font's characters are packed into.
type FontAtlas struct {
	Glyphs [256]FontAtlasGlyph `json:"glyphs"`
	Width  uint32              `json:"width"`
	Height uint32              `json:"height"`
	Image  Image               `json:"image"`
}

// FontAtlasGlyph locates one glyph slot within a FontAtlas's texture.
type FontAtlasGlyph struct {
	X, Y               uint32 `json:"-"`
	Width, Height      uint32 `json:"-"`
	HorizontalAdvance  int32  `json:"horizontal_advance"`
	Kerning            int32  `json:"kerning"`
}

// Action is one step of a Timeline moment or an Object event (§3's "15
// scalar fields + variable-length parameters/arguments").
type Action struct {
	LibraryID       uint32   `json:"library_id"`
	ActionID        uint32   `json:"action_id"`
	ActionKind      uint32   `json:"action_kind"`
	HasRelative     bool     `json:"has_relative"`
	IsQuestion      bool     `json:"is_question"`
	HasTarget       bool     `json:"has_target"`
	ActionType      uint32   `json:"action_type"`
	Name            string   `json:"name"`
	Code            string   `json:"code"`
	ParametersUsed  uint32   `json:"parameters_used"`
	Parameters      []uint32 `json:"parameters,omitempty"`
	Target          int32    `json:"target"`
	Relative        bool     `json:"relative"`
	Arguments       []string `json:"arguments,omitempty"`
	Negate          bool     `json:"negate"`
}

// Timeline is an ordered set of (position, actions) moments.
type Timeline struct {
	ID      uint32           `json:"id"`
	Name    string           `json:"name"`
	Moments []TimelineMoment `json:"moments,omitempty"`
}

// TimelineMoment fires its Actions when the timeline reaches Position.
type TimelineMoment struct {
	Position uint32   `json:"position"`
	Actions  []Action `json:"actions,omitempty"`
}

// Object is a game entity template: its visual/physical defaults plus the
// event handlers that drive its behavior.
type Object struct {
	ID         uint32        `json:"id"`
	Name       string        `json:"name"`
	Sprite     int32         `json:"sprite"`
	Solid      bool          `json:"solid"`
	Visible    bool          `json:"visible"`
	Depth      int32         `json:"depth"`
	Persistent bool          `json:"persistent"`
	Parent     int32         `json:"parent"`
	Mask       int32         `json:"mask"`
	Events     []ObjectEvent `json:"events,omitempty"`
}

// ObjectEvent is one (event_type, event_number) handler's action list.
type ObjectEvent struct {
	EventType   uint32   `json:"event_type"`
	EventNumber int32    `json:"event_number"`
	Actions     []Action `json:"actions,omitempty"`
}

// Room is a playable level: its layout plus the instances placed in it.
type Room struct {
	ID            uint32           `json:"id"`
	Name          string           `json:"name"`
	Caption       string           `json:"caption"`
	Width         uint32           `json:"width"`
	Height        uint32           `json:"height"`
	Speed         uint32           `json:"speed"`
	Persistent    bool             `json:"persistent"`
	ClearColor    uint32           `json:"clear_color"`
	Clear         bool             `json:"clear"`
	CreationCode  string           `json:"creation_code"`
	EnableViews   bool             `json:"enable_views"`
	Backgrounds   []RoomBackground `json:"backgrounds,omitempty"`
	Views         []RoomView       `json:"views,omitempty"`
	Instances     []RoomInstance   `json:"instances,omitempty"`
	Tiles         []RoomTile       `json:"tiles,omitempty"`
}

// RoomBackground is one background layer's placement and scroll behavior.
type RoomBackground struct {
	Visible    bool  `json:"visible"`
	Foreground bool  `json:"foreground"`
	Background int32 `json:"background"`
	X          int32 `json:"x"`
	Y          int32 `json:"y"`
	TileH      bool  `json:"tile_h"`
	TileV      bool  `json:"tile_v"`
	HSpeed     int32 `json:"h_speed"`
	VSpeed     int32 `json:"v_speed"`
	Stretch    bool  `json:"stretch"`
}

// RoomView is one camera viewport into the room.
type RoomView struct {
	Visible      bool   `json:"visible"`
	ViewX        uint32 `json:"view_x"`
	ViewY        uint32 `json:"view_y"`
	ViewWidth    uint32 `json:"view_width"`
	ViewHeight   uint32 `json:"view_height"`
	PortX        uint32 `json:"port_x"`
	PortY        uint32 `json:"port_y"`
	PortWidth    uint32 `json:"port_width"`
	PortHeight   uint32 `json:"port_height"`
	HBorder      uint32 `json:"h_border"`
	VBorder      uint32 `json:"v_border"`
	HSpeed       int32  `json:"h_speed"`
	VSpeed       int32  `json:"v_speed"`
	TargetObject int32  `json:"target_object"`
}

// RoomInstance places one Object instance in the room.
type RoomInstance struct {
	X            int32  `json:"x"`
	Y            int32  `json:"y"`
	Object       int32  `json:"object"`
	ID           int32  `json:"id"`
	CreationCode string `json:"creation_code"`
}

// RoomTile places one cropped region of a Background as a static tile.
type RoomTile struct {
	X          int32  `json:"x"`
	Y          int32  `json:"y"`
	Background int32  `json:"background"`
	TileX      int32  `json:"tile_x"`
	TileY      int32  `json:"tile_y"`
	Width      uint32 `json:"width"`
	Height     uint32 `json:"height"`
	Depth      int32  `json:"depth"`
	ID         int32  `json:"id"`
}

// Include is an arbitrary file bundled with the project for extraction at
// runtime.
type Include struct {
	Name            string `json:"name"`
	OriginalPath    string `json:"original_path"`
	OriginalChosen  bool   `json:"original_chosen"`
	OriginalSize    uint32 `json:"original_size"`
	StoreInEditable bool   `json:"store_in_editable"`
	Data            []byte `json:"-"`
	Export          uint32 `json:"export"`
	ExportFolder    string `json:"export_folder"`
	Overwrite       bool   `json:"overwrite"`
	FreeMemory      bool   `json:"free_memory"`
	RemoveAtEnd     bool   `json:"remove_at_end"`
}

// Extension is a native-code plugin bundled with the project.
type Extension struct {
	Name     string          `json:"name"`
	TempName string          `json:"temp_name"`
	Files    []ExtensionFile `json:"files,omitempty"`
}

// ExtensionFile is one file within an Extension: its exported functions,
// constants, and its own (deobfuscated, then decompressed) payload.
type ExtensionFile struct {
	Name                 string               `json:"name"`
	FileType             uint32               `json:"file_type"`
	InitializationFunc   string               `json:"initialization_function"`
	FinalizationFunc     string               `json:"finalization_function"`
	Functions            []ExtensionFunction  `json:"functions,omitempty"`
	Constants            []Constant           `json:"constants,omitempty"`
	Data                 []byte               `json:"-"`
}

// ExtensionFunction is one native function an ExtensionFile exports.
type ExtensionFunction struct {
	Name              string   `json:"name"`
	ExternalName      string   `json:"external_name"`
	CallingConvention uint32   `json:"calling_convention"`
	ID                uint32   `json:"id"`
	ArgumentTypes     []uint32 `json:"argument_types,omitempty"`
	ReturnType        uint32   `json:"return_type"`
}
