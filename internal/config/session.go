package config

import "github.com/tomz197/alienfield/internal/sim"

// Session overlays prefixed environment variables on sim.DefaultConfig.
// With prefix "ALIENFIELD_", ENEMY_COUNT is read from ALIENFIELD_ENEMY_COUNT.
// Terrain is not configurable from the environment. The result is not
// validated here; the scheduler rejects bad values.
func Session(prefix string) sim.Config {
	c := sim.DefaultConfig()
	key := func(name string) string { return prefix + name }

	c.FieldWidth = GetEnvFloat(key("FIELD_WIDTH"), c.FieldWidth)
	c.FieldHeight = GetEnvFloat(key("FIELD_HEIGHT"), c.FieldHeight)
	c.EnemyCount = GetEnvInt(key("ENEMY_COUNT"), c.EnemyCount)
	c.MinEnemySpeed = GetEnvFloat(key("MIN_ENEMY_SPEED"), c.MinEnemySpeed)
	c.MaxEnemySpeed = GetEnvFloat(key("MAX_ENEMY_SPEED"), c.MaxEnemySpeed)
	c.MoveStep = GetEnvFloat(key("MOVE_STEP"), c.MoveStep)
	c.ProjectileSpeed = GetEnvFloat(key("PROJECTILE_SPEED"), c.ProjectileSpeed)
	c.ProjectileRadius = GetEnvFloat(key("PROJECTILE_RADIUS"), c.ProjectileRadius)
	c.TerrainRadius = GetEnvFloat(key("PROJECTILE_TERRAIN_RADIUS"), c.TerrainRadius)
	c.TickInterval = GetEnvDuration(key("TICK_INTERVAL"), c.TickInterval)
	c.AutoFireInterval = GetEnvDuration(key("AUTO_FIRE_INTERVAL"), c.AutoFireInterval)
	c.KillRadius = GetEnvFloat(key("KILL_RADIUS"), c.KillRadius)
	c.PlayerRadius = GetEnvFloat(key("PLAYER_RADIUS"), c.PlayerRadius)
	c.EnemyRadius = GetEnvFloat(key("ENEMY_RADIUS"), c.EnemyRadius)
	c.ContactRadius = GetEnvFloat(key("CONTACT_RADIUS"), c.ContactRadius)
	c.CullOffField = GetEnvBool(key("CULL_OFF_FIELD"), c.CullOffField)
	c.ConsumeProjectileOnHit = GetEnvBool(key("CONSUME_PROJECTILE"), c.ConsumeProjectileOnHit)
	c.Seed = GetEnvInt64(key("SEED"), c.Seed)
	if GetEnvBool(key("NO_TERRAIN"), false) {
		c.Terrain = nil
	}
	return c
}
