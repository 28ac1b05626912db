// Package sapling is the runtime core of a small 2D scene engine for
// [Ebitengine].
//
// An [Engine] runs a fixed 60 tick loop. Every frame it polls the keyboard
// into the [Input] action table, services the active music track, updates
// every object of the active [Scene] in order, and draws them back to front
// through a [Camera]. Textures, sounds and music come from the [Assets]
// cache, which loads each path once and releases everything on Close.
//
// # Quick start
//
//	cfg, err := sapling.LoadConfig("")
//	if err != nil { ... }
//	engine, err := sapling.New(cfg, sapling.Options{})
//	if err != nil { ... }
//	defer engine.Close()
//
//	engine.RegisterScene(sapling.SceneDef{
//		Name: "main",
//		Setup: func(s *sapling.Scene, ctx *sapling.Context) error {
//			tex, err := ctx.Assets.LoadTexture("player.png")
//			if err != nil {
//				return err
//			}
//			return s.Add(sapling.NewStaticSprite(tex))
//		},
//	})
//	engine.SwitchScene("main")
//	err = engine.Run()
//
// # Objects
//
// Anything with an Update(*Context) error method can live in a scene. An
// object that also implements [Sprite] is drawn from its texture and
// [RenderProps]; one that implements [Drawer] records its own draw commands.
// Objects with neither are logic only. Objects may add and remove scene
// members, themselves included, while the scene is being updated: every
// member present for the whole pass is visited exactly once.
//
// # Render properties
//
// [RenderProps] hold where and how an object is drawn: destination position
// and size, a source frame within the texture, horizontal and vertical
// flips, a rotation origin and an angle in degrees. Flips mirror the sampled
// texels and never move the destination.
//
// # Debugging
//
// The [DebugOverlay] outlines rectangles on top of each frame. Debug mode
// ([Engine.SetDebugMode] or debug.enabled in the configuration) turns on
// internal assertions and logs per-frame timings at debug level.
//
// [Ebitengine]: https://ebitengine.org
package sapling
