package ecs

// UpdateFrame carries the per-tick context handed to every system.
type UpdateFrame struct {
	DeltaTime float64
	Commands  *Commands
	Scene     *Scene
}

func newUpdateFrame(dt float64, scene *Scene, commands *Commands) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Commands:  commands,
		Scene:     scene,
	}
}
