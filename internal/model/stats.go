package model

// Well-known stat ids. Content may register any other id.
const (
	StatHealth            StatID = "health" // routed to the Health pool, not a registered stat
	StatMaxHealth         StatID = "max_health"
	StatMaxMana           StatID = "max_mana"
	StatMaxEnergy         StatID = "max_energy"
	StatAttackPower       StatID = "attack_power"
	StatSpellPower        StatID = "spell_power"
	StatCritChance        StatID = "crit_chance"
	StatCritDamage        StatID = "crit_damage"
	StatAttackSpeed       StatID = "attack_speed"
	StatCastSpeed         StatID = "cast_speed"
	StatArmor             StatID = "armor"
	StatMagicResist       StatID = "magic_resist"
	StatDodgeChance       StatID = "dodge_chance"
	StatBlockChance       StatID = "block_chance"
	StatMoveSpeed         StatID = "move_speed"
	StatCooldownReduction StatID = "cooldown_reduction"
	StatHealthRegen       StatID = "health_regen"
	StatManaRegen         StatID = "mana_regen"
	StatFireResist        StatID = "fire_resist"
	StatIceResist         StatID = "ice_resist"
	StatLightningResist   StatID = "lightning_resist"
	StatInvulnerable      StatID = "invulnerable"
)

// MaxCooldownReduction caps the cooldown_reduction stat.
const MaxCooldownReduction = 0.8
